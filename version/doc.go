// Package version reports build information of the measure binary.
//
// Set it at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/measure/version.Version=1.2.3 \
//	  -X github.com/ncobase/measure/version.Branch=main \
//	  -X github.com/ncobase/measure/version.Revision=abc123 \
//	  -X 'github.com/ncobase/measure/version.BuiltAt=$(date)'" ./cmd/measure
//
// Unset values fall back to the module build info.
package version
