package releases

// ParseCatalog exports parseCatalog for testing.
var ParseCatalog = parseCatalog //nolint:gochecknoglobals // test export

// ParseHistory exports parseHistory for testing.
var ParseHistory = parseHistory //nolint:gochecknoglobals // test export

// FindAllUpdatesHref exports findAllUpdatesHref for testing.
var FindAllUpdatesHref = findAllUpdatesHref //nolint:gochecknoglobals // test export

// FindExecutionToken exports findExecutionToken for testing.
var FindExecutionToken = findExecutionToken //nolint:gochecknoglobals // test export

// Resolve exports resolve for testing.
var Resolve = resolve //nolint:gochecknoglobals // test export
