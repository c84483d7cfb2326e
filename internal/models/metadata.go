package models

// RequestMetadata travels with every call. ID correlates the log and trace
// lines of one client request across services.
type RequestMetadata struct {
	ID          string `json:"id"`
	RequesterID int64  `json:"requester_id"`
}
