package chunk

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKind identifies a run boundary.
type RecordKind uint8

const (
	// DataStart marks the offset of the first window of a data run.
	DataStart RecordKind = iota + 1
	// ZeroRunEnd summarises a zero-run that just ended.
	ZeroRunEnd
)

const (
	dataStartTag  = "data-start"
	zeroRunEndTag = "zero-run-end"
)

func (k RecordKind) String() string {
	switch k {
	case DataStart:
		return dataStartTag
	case ZeroRunEnd:
		return zeroRunEndTag
	default:
		return "record(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseRecordKind is the inverse of RecordKind.String.
func ParseRecordKind(s string) (RecordKind, error) {
	switch s {
	case dataStartTag:
		return DataStart, nil
	case zeroRunEndTag:
		return ZeroRunEnd, nil
	}
	return 0, fmt.Errorf("unknown record kind %q", s)
}

// Record is a run boundary emitted by the scanner. Records are immutable
// once emitted.
type Record struct {
	Kind RecordKind
	// Offset is where the data run begins for DataStart, and where the
	// zero-run began for ZeroRunEnd.
	Offset int64
	// Chunks and Bytes are set for ZeroRunEnd only.
	Chunks int64
	Bytes  int64
}

// End returns the offset one past a zero-run. For DataStart it is Offset.
func (r Record) End() int64 {
	if r.Kind == ZeroRunEnd {
		return r.Offset + r.Bytes
	}
	return r.Offset
}

// String renders the record as a single report line without the newline.
//
//	data-start offset=1024 (0x400)
//	zero-run-end start=0 chunks=1 bytes=1024
func (r Record) String() string {
	switch r.Kind {
	case DataStart:
		return fmt.Sprintf("%s offset=%d (0x%x)", dataStartTag, r.Offset, r.Offset)
	case ZeroRunEnd:
		return fmt.Sprintf("%s start=%d chunks=%d bytes=%d", zeroRunEndTag, r.Offset, r.Chunks, r.Bytes)
	default:
		return r.Kind.String()
	}
}

// ParseRecord parses a line produced by Record.String.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, fmt.Errorf("empty record line")
	}
	kind, err := ParseRecordKind(fields[0])
	if err != nil {
		return Record{}, err
	}
	rec := Record{Kind: kind}

	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			// "(0x400)" trailer on data-start lines
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("record field %s: %w", key, err)
		}
		switch key {
		case "offset", "start":
			rec.Offset = n
		case "chunks":
			rec.Chunks = n
		case "bytes":
			rec.Bytes = n
		default:
			return Record{}, fmt.Errorf("unknown record field %q", key)
		}
	}
	return rec, nil
}

// Sink receives records in emission order. Implementations that persist
// records must make each one durable before Append returns so an
// interrupted scan leaves a usable partial report.
type Sink interface {
	Append(rec Record) error
}
