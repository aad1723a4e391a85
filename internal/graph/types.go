package graph

import "fmt"

// DriveItem is the subset of the Graph driveItem resource the pipeline needs.
type DriveItem struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	ETag   string       `json:"eTag"`
	Folder *FolderFacet `json:"folder,omitempty"`
	File   *FileFacet   `json:"file,omitempty"`
}

type FolderFacet struct {
	ChildCount int `json:"childCount"`
}

type FileFacet struct {
	MimeType string `json:"mimeType"`
}

func (d DriveItem) IsFolder() bool {
	return d.Folder != nil
}

// driveChildren is the envelope returned by the children listing endpoint.
type driveChildren struct {
	Value []DriveItem `json:"value"`
}

// CalendarEvent is a raw event as returned by the calendar view, before
// timezone conversion. Start and End carry the source's dateTime string,
// qualified with its timezone name (UTC from Graph by default).
type CalendarEvent struct {
	ID       string        `json:"id"`
	Subject  string        `json:"subject"`
	Start    EventDateTime `json:"start"`
	End      EventDateTime `json:"end"`
	Location EventLocation `json:"location"`
}

type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type EventLocation struct {
	DisplayName string `json:"displayName"`
}

type eventList struct {
	Value []CalendarEvent `json:"value"`
}

// RequestError is returned for any non-2xx response from the remote store.
// Nothing is retried; the step in progress fails with this error.
type RequestError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("graph: %s returned status %d: %s", e.Op, e.Status, e.Body)
}
