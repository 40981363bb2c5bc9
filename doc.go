// Package tagwriter is the composition root for the tagwriter application.
//
// It connects the metadata domain core (field registry, read/write paths,
// sanitization) with the infrastructure adapters (ExifTool subprocess,
// embedded decoder) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Tagwriter edits IPTC/EXIF/XMP metadata on image files without touching
// pixel data. All binary format work is delegated to a backend tool; the
// core only maps logical fields ("Headline", "Caption/Abstract") to the
// concrete tags that may hold them across namespaces, and keeps those
// namespace variants consistent on write.
//
// Features:
//
//   - **Field Registry**: a fixed catalogue mapping each logical field to
//     its tag candidates in read-priority order.
//   - **Injected Backend**: the external tool is a port (`core.Backend`),
//     so the core tests against a fake and callers can swap adapters.
//   - **Sanitized Writes**: every value is cleaned and length-capped before
//     it reaches the tool; batch writes fan one edit out to every declared
//     namespace variant.
//   - **Exchange**: records export to and import from flat JSON documents.
//   - **Session**: directory navigation, recent files and persisted
//     preferences live outside the core, owned by the caller.
//
// Usage:
//
//	svc, err := tagwriter.New(
//		tagwriter.WithBackup(true),
//		tagwriter.WithLogger(logger),
//	)
//
//	rec, err := svc.Load(ctx, "photo.jpg")
//	rec.Set("Headline", "Harbor at dawn")
//	backupPath, err := svc.Save(ctx, "photo.jpg", rec)
package tagwriter
