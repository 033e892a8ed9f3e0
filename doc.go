// Package dataflash decodes binary ArduPilot/DataFlash ".bin" flight logs:
// a contiguous stream of variable-length, self-describing records framed
// by a two-byte sync marker and a one-byte type code.
//
// # Overview
//
// Open memory-maps the file and runs a single-pass FMT prepass to
// discover record layouts before any decoding begins. Iterate (or All)
// then partitions the file into sync-marker-aligned blocks, decodes them
// in parallel across a worker pool, and streams the results back to the
// caller in strict byte-offset order — throughput close to storage
// bandwidth without giving up the file's natural ordering.
//
// # Concurrency
//
// The returned sequence is lazy and non-restartable: ranging over it
// launches the worker pool, and stopping early (break, or a panic
// unwinding the loop) cancels in-flight decoding promptly. The underlying
// memory mapping must outlive any iteration in progress; do not call
// Close while a range loop over Iterate/All is still running.
//
// Example:
//
//	flightLog, err := dataflash.Open("2024-01-05.bin", dataflash.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer flightLog.Close()
//
//	for rec := range flightLog.Iterate("GPS") {
//	    lat, _ := rec.Get("Lat")
//	    fmt.Println(lat)
//	}
package dataflash
