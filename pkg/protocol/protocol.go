// Package protocol defines the wire format shared by the open-here server and client.
package protocol

// Routes served by the open-here server. Both accept GET (with a body) and POST.
const (
	RouteURL  = "/open/url"
	RoutePath = "/open/path"
)

// FilenameParam is the query parameter carrying the filename on RoutePath.
const FilenameParam = "filename"

// URLTarget is the JSON body sent to RouteURL.
type URLTarget struct {
	Target string `json:"target"`
}
