package engine

import (
	"github.com/askorykh/pagedb/internal/catalog"
	"github.com/askorykh/pagedb/internal/predicate"
	"github.com/askorykh/pagedb/internal/storage/cursor"
	"github.com/askorykh/pagedb/internal/storage/row"
)

// executeDelete implements spec.md §4.F's two-pass in-place compaction.
//
// Pass 1 zeros every row matching stmt.Where and counts them.
// Pass 2 walks a read cursor across the original row range; the first
// zero row it sees arms a write cursor at that position (the "write
// cursor not yet armed" state from spec.md §9's redesign note,
// represented here by a writeArmed flag plus a writeRow index rather
// than a -1 sentinel).
// Every later non-zero row is copied back to the write cursor, the
// read slot is zeroed, and the write cursor advances — closing the gap.
func executeDelete(table *catalog.Table, stmt DeleteStmt) error {
	originalNumRows := table.NumRows

	deletedCount, err := deleteMatchingRows(table, stmt, originalNumRows)
	if err != nil {
		return err
	}
	if deletedCount == 0 {
		return nil
	}

	if err := compactRows(table, originalNumRows); err != nil {
		return err
	}

	table.NumRows -= deletedCount
	return nil
}

func deleteMatchingRows(table *catalog.Table, stmt DeleteStmt, numRows uint32) (uint32, error) {
	var deletedCount uint32

	for rowNum := uint32(0); rowNum < numRows; rowNum++ {
		c := &cursor.Cursor{Table: table, RowNum: rowNum}
		buf, err := c.Value()
		if err != nil {
			return 0, err
		}

		if row.IsZero(buf) {
			continue
		}

		r, err := row.Deserialize(table, buf)
		if err != nil {
			return 0, err
		}

		match, err := predicate.Evaluate(table, r, stmt.Where)
		if err != nil || !match {
			continue
		}

		zeroBytes(buf)
		deletedCount++
	}

	return deletedCount, nil
}

func compactRows(table *catalog.Table, numRows uint32) error {
	var writeRow uint32
	writeArmed := false

	for readRow := uint32(0); readRow < numRows; readRow++ {
		readCursor := &cursor.Cursor{Table: table, RowNum: readRow}
		buf, err := readCursor.Value()
		if err != nil {
			return err
		}

		if row.IsZero(buf) {
			if !writeArmed {
				writeArmed = true
				writeRow = readRow
			}
			continue
		}

		if !writeArmed {
			continue
		}

		writeCursor := &cursor.Cursor{Table: table, RowNum: writeRow}
		dst, err := writeCursor.Value()
		if err != nil {
			return err
		}

		copy(dst, buf)
		zeroBytes(buf)
		writeRow++
	}

	return nil
}

func zeroBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
