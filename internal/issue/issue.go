// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoInterpreterFoundId Id = iota + 1
	InvalidSelectionId
	PromptClosedId
	VenvCreationFailedId
	ActivationFailedId
	RequirementsInstallFailedId
	ConfigLoadFailedId
	InvalidActivationRuntimeId
	ShellNotFoundId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(slices.Clone(i.docLinks), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

// Describe renders the catalog entry linked to err, if any.
// The boolean is false when err carries no issue reference.
func Describe(err error, stylePath string) (string, bool, error) {
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.IssueID == 0 {
		return "", false, nil
	}
	iss := Get(ae.IssueID)
	if iss == nil {
		return "", false, nil
	}
	out, rerr := iss.Render(stylePath)
	if rerr != nil {
		return "", true, rerr
	}
	return out, true, nil
}

var (
	render = glamour.Render

	noInterpreterFoundIssue = &Issue{
		id: NoInterpreterFoundId,
		mdMsg: `
# No Python interpreter found!

None of the configured interpreters answered ` + "`--version`" + `.

## Things you can try:
- List what was probed:
~~~
$ venvkit interpreters
~~~
- Point the interpreter table at your installs in the config file:
~~~cue
interpreters: [
  {version: "3.12", path: "/usr/local/bin/python3.12"},
]
~~~
- Write a starter config with ` + "`venvkit config init`",
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	invalidSelectionIssue = &Issue{
		id: InvalidSelectionId,
		mdMsg: `
# Too many invalid answers!

The version prompt gave up after the configured number of attempts.

## Things you can try:
- Type one of the versions exactly as listed, e.g. ` + "`3114`" + `
- Raise or clear ` + "`selection.max_attempts`" + ` in your config (0 means no limit)`,
	}

	promptClosedIssue = &Issue{
		id: PromptClosedId,
		mdMsg: `
# Input closed!

Standard input ended before an answer was given.

## Things you can try:
- Run venvkit from an interactive terminal
- When piping answers, provide one line per prompt:
~~~
$ printf '3114\n\n' | venvkit
~~~`,
	}

	venvCreationFailedIssue = &Issue{
		id: VenvCreationFailedId,
		mdMsg: `
# Failed to create the virtual environment!

The interpreter could not run its ` + "`venv`" + ` module.

## Things you can try:
- Check that the venv module is installed (Debian and Ubuntu ship it separately):
~~~
$ sudo apt install python3-venv
~~~
- Make sure the project directory is writable
- Run again with ` + "`--verbose`" + ` to see the interpreter output`,
		extLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# Failed to activate the virtual environment!

The activation script could not be run.

## Things you can try:
- Recreate the environment by running venvkit again
- Try the in-process activator:
~~~cue
activation: runtime: "virtual"
~~~`,
	}

	requirementsInstallFailedIssue = &Issue{
		id: RequirementsInstallFailedId,
		mdMsg: `
# Failed to install the requirements!

pip exited with an error while installing the manifest.

## Things you can try:
- Check the package names and version pins in requirements.txt
- Check your network connection or package index settings
- Run pip by hand to see the full error:
~~~
$ .venv/bin/pip install -r requirements.txt
~~~`,
		extLinks: []HttpLink{"https://pip.pypa.io/en/stable/reference/requirements-file-format/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where venvkit looks for it:
~~~
$ venvkit config path
~~~
- Regenerate a valid file with ` + "`venvkit config init --force`",
	}

	invalidActivationRuntimeIssue = &Issue{
		id: InvalidActivationRuntimeId,
		mdMsg: `
# Invalid activation runtime!

` + "`activation.runtime`" + ` must be one of:
- ` + "`native`" + `: run the activation script through the system shell
- ` + "`virtual`" + `: source the activation script with the built-in shell interpreter`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

No shell was found to run the activation script.

## Things you can try:
- Install a POSIX shell (sh or bash), or cmd.exe on Windows
- Switch to the in-process activator with ` + "`activation.runtime: \"virtual\"`",
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

venvkit could not write to the project directory.

## Things you can try:
- Check the ownership of the environment directory
- Choose another project directory with ` + "`--dir`",
	}

	issues = map[Id]*Issue{
		noInterpreterFoundIssue.Id():        noInterpreterFoundIssue,
		invalidSelectionIssue.Id():          invalidSelectionIssue,
		promptClosedIssue.Id():              promptClosedIssue,
		venvCreationFailedIssue.Id():        venvCreationFailedIssue,
		activationFailedIssue.Id():          activationFailedIssue,
		requirementsInstallFailedIssue.Id(): requirementsInstallFailedIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		invalidActivationRuntimeIssue.Id():  invalidActivationRuntimeIssue,
		shellNotFoundIssue.Id():             shellNotFoundIssue,
		permissionDeniedIssue.Id():          permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
