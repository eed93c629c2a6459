// Package chessvision looks up board positions through the chessvision
// prediction service.
//
// The service is rate limited and occasionally slow, so the client
// spaces calls with a randomized delay, allows one outstanding request
// at a time, and treats a timeout as "position unknown" rather than a
// failure. Records keep flowing when the service is down; only their
// FEN fields stay empty.
package chessvision
