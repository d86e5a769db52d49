// Package kvtag turns KEY=VALUE tag files into per-track metadata.
//
// A tag file describes an audio CD (or a compilation of several) one
// assignment per line. Values declared once stay in effect for the following
// tracks, every TITLE completes a track, and values may refer to each other
// and be reshaped by a small format language:
//
//	ALBUMARTIST=Some Band
//	ALBUM=Live at Home
//	FILENAME=%f~${ALBUMARTIST}/${ALBUM}/${TRACKNUMBER} ${TITLE}.flac~
//	TITLE=Intro
//	TITLE=Outro
//
// # Quick Start
//
// Reading the tracks of a file:
//
//	tracks, warnings, err := kvtag.ReadRecords("album.tags")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range tracks {
//		fmt.Println(t.Get("TRACKNUMBER"), t.Get("TITLE"))
//	}
//
// Rendering a conversion script:
//
//	sink, err := kvtag.NewRenderer(kvtag.ModeScript, os.Stdout, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := kvtag.New(sink).ParseFile("album.tags"); err != nil {
//		os.Exit(1)
//	}
//
// # Architecture
//
// Events flow through a fixed chain of stages:
//
//	[Parser]         - KEY=VALUE lines to OnData events
//	  ├─ [Filter]    - rejects keys that may not be written
//	  ├─ [Stack]     - inheritance of values, track numbering
//	  ├─ [Replace]   - ${KEY} substitution within a track
//	  ├─ [Format]    - %...~arg~ formatting commands
//	  ├─ [Unescape]  - removes backslash escapes
//	  └─ [Renderer]  - script, overview, dbase or debug output
//
// Every stage can stop the stream by turning unhealthy; the parser checks the
// chain's health before each byte and gives up as soon as it fails. Problems
// are reported to a Reporter, never thrown across the chain.
//
// # Batch Processing
//
// ParseMany reads many files concurrently and feeds them to the chain one at
// a time in the given order:
//
//	err := kvtag.New(sink).ParseMany(ctx, "a.tags", "b.tags")
package kvtag
