// Package types holds the public contracts shared by the inspector packages:
// the typed error taxonomy and the collaborator interfaces a session is
// wired with (byte source, overwrite confirmation).
//
// Errors are classified by ErrKind so callers can branch on intent rather
// than on message text:
//
//	if errors.Is(err, types.ErrOverwriteDeclined) {
//	    // user said no; not a failure
//	}
//	var rerr *types.RangeError
//	if errors.As(err, &rerr) {
//	    fmt.Printf("window [%d,%d) outside [%d,%d]\n", ...)
//	}
package types
