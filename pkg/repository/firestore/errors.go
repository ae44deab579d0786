package firestore

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a document does not exist
var ErrNotFound = goerr.New("record not found")
