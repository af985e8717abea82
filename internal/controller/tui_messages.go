package controller

// List item types.
type actionItem struct {
	action Action
	key    string
	title  string
	desc   string
}

func (a actionItem) FilterValue() string {
	return a.title
}

func (a actionItem) Title() string {
	return "[" + a.key + "] " + a.title
}

func (a actionItem) Description() string {
	return a.desc
}

func actionItems() []actionItem {
	return []actionItem{
		{action: ActionAccept, key: "a", title: "Accept", desc: "insert the doc comment"},
		{action: ActionSkip, key: "s", title: "Skip", desc: "leave this function undocumented"},
		{action: ActionContext, key: "c", title: "Context", desc: "show the surrounding lines"},
		{action: ActionQuit, key: "q", title: "Quit", desc: "stop reviewing and keep applied edits"},
	}
}
