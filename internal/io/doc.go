// Package ioutils provides file system utilities shared by the scanner, the
// configuration loader and the spreadsheet writer.
//
// # File Operations
//
//	// Keep a copy of the spreadsheet before it is modified
//	err := ioutils.CopyFile(ctx, "/sheets/albums.xlsx", "/sheets/albums.xlsx.bak")
//
//	// Replace a file without ever leaving it half written
//	err := ioutils.WriteFileAtomic(ctx, "/sheets/albums.xlsx", func(w io.Writer) error {
//	    return workbook.Write(w)
//	})
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// A failed WriteFileAtomic leaves the original file exactly as it was, so a
// crash in the middle of saving a workbook never corrupts it.
package ioutils
