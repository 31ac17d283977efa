// Package preview renders a field list as the HTML form an end user would
// fill in. Widgets resolve through a widgets.Registry, user supplied text is
// sanitised with bluemonday, an optional go-theme manifest contributes CSS
// variables and a stylesheet, and rendered output is cached in an LRU keyed by
// the rendered input.
package preview
