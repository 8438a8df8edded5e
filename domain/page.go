package domain

// Page is the result of one pagination fetch, oldest first.
//
// NextCursor points at the oldest fetched record and is nil when the
// fetch returned nothing. HasMore reports whether the fetch filled the
// requested limit; a short page conclusively signals exhaustion.
type Page struct {
	Messages   []Message
	NextCursor *string
	HasMore    bool
}
