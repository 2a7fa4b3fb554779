// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func stubRender(t *testing.T) {
	t.Helper()
	original := render
	t.Cleanup(func() { render = original })
	render = func(in string, _ string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		NoInterpreterFoundId,
		InvalidSelectionId,
		PromptClosedId,
		VenvCreationFailedId,
		ActivationFailedId,
		RequirementsInstallFailedId,
		ConfigLoadFailedId,
		InvalidActivationRuntimeId,
		ShellNotFoundId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Issue with ID %d is not in the issues map", id)
		}
	}

	if NoInterpreterFoundId != 1 {
		t.Errorf("NoInterpreterFoundId = %d, want 1", NoInterpreterFoundId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{NoInterpreterFoundId, false, "No Python interpreter found"},
		{InvalidSelectionId, false, "Too many invalid answers"},
		{PromptClosedId, false, "Input closed"},
		{VenvCreationFailedId, false, "Failed to create the virtual environment"},
		{ActivationFailedId, false, "Failed to activate"},
		{RequirementsInstallFailedId, false, "Failed to install the requirements"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{InvalidActivationRuntimeId, false, "Invalid activation runtime"},
		{ShellNotFoundId, false, "Shell not found"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			iss := Get(tt.id)
			if tt.wantNil {
				if iss != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if iss == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if iss.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", iss.Id(), tt.id)
			}
			if !strings.Contains(string(iss.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues_OrderedById(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(all), len(issues))
	}
	for i, iss := range all {
		if iss.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, iss.Id(), i+1)
		}
		if iss.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", iss.Id())
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	iss := Get(VenvCreationFailedId)
	links := iss.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected external links")
	}
	original := links[0]
	links[0] = "modified"
	if iss.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	withLinks := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}
	out, err := withLinks.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(out, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
	if !strings.Contains(out, "- <https://docs.example.com>\n- <https://external.example.com>") {
		t.Errorf("Render() should list each link on its own line, got %q", out)
	}

	noLinks := &Issue{id: Id(9998), mdMsg: "# Test Issue"}
	out, err = noLinks.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(out, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}

	for _, iss := range Values() {
		if out, err := iss.Render(""); err != nil || out == "" {
			t.Errorf("Issue %d failed to render: %q, %v", iss.Id(), out, err)
		}
	}
}

func TestDescribe(t *testing.T) {
	stubRender(t)

	linked := NewErrorContext().
		WithOperation("create virtual environment").
		WithIssue(VenvCreationFailedId).
		Wrap(errors.New("exit status 1")).
		BuildError()

	out, ok, err := Describe(linked, "notty")
	if err != nil || !ok {
		t.Fatalf("Describe() = %v, %v; want rendered issue", ok, err)
	}
	if !strings.Contains(out, "venv") {
		t.Errorf("Describe() output = %q", out)
	}

	if _, ok, _ := Describe(errors.New("plain"), "notty"); ok {
		t.Error("Describe() should report false for errors without an issue")
	}

	unlinked := NewErrorContext().WithOperation("x").BuildError()
	if _, ok, _ := Describe(unlinked, "notty"); ok {
		t.Error("Describe() should report false when IssueID is unset")
	}
}
