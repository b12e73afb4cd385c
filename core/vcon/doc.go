// Package vcon implements the vCon (Virtual Conversation Container) data
// model: parties, dialogs, analysis, and attachments bundled into one
// versioned JSON document with index-based cross-references between the
// ordered collections.
//
// A container is obtained from BuildNew or DecodeCanonical. Mutation goes
// through the Add* methods, which fail fast and leave the container
// unchanged on any violation. Validate re-checks every invariant over a
// snapshot and reports all violations at once. EncodeCanonical emits the
// RFC 8785 canonical form of the document.
package vcon
