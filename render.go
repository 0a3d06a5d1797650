package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/savioxavier/termlink"
)

const defaultTheme = "dracula"

var glamourRenderer *glamour.TermRenderer

func init() {
	initRenderer(defaultTheme)
}

func initRenderer(theme string) {
	if theme == "" {
		theme = defaultTheme
	}
	glamourRenderer, _ = glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(0),
	)
}

const homeMarkdown = `# taskdeck

Tasks live in a single file and move forward through
*pending → started → in progress → done*.

- ` + "`h`" + ` home screen
- ` + "`t`" + ` task list
- ` + "`a`" + ` add a task
- ` + "`p`" + ` progress the selected task
- ` + "`d`" + ` delete the selected task
- ` + "`↑/k ↓/j`" + ` move the selection
- ` + "`q`" + ` quit
`

// renderHome renders the welcome/help text through Glamour, falling
// back to the raw markdown if the renderer is unavailable.
func renderHome(storePath, cfgPath string) string {
	body := homeMarkdown

	if glamourRenderer != nil {
		if rendered, err := glamourRenderer.Render(body); err == nil {
			body = rendered
		}
	}

	paths := fmt.Sprintf("tasks: %s\nconfig: %s", linkPath(storePath), linkPath(cfgPath))

	return strings.TrimRight(body, "\n") + "\n\n" + fileStyle.Render(paths)
}

// linkPath makes a path clickable on terminals that support hyperlinks.
func linkPath(path string) string {
	if path == "" {
		return path
	}
	if termlink.SupportsHyperlinks() {
		return termlink.Link(path, "file://"+path)
	}
	return path
}
