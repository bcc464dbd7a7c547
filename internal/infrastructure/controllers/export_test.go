package controllers

// ParseTrackRequest exports parseTrackRequest for testing.
var ParseTrackRequest = parseTrackRequest //nolint:gochecknoglobals // test export
