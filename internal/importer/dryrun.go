// AngelaMos | 2026
// dryrun.go

package importer

// DryRunResult is what an import would do to an empty gym, without
// touching storage.
type DryRunResult struct {
	Payloads []Payload
	Errors   []RowError
	// Repeats maps a phone number to the rows after the first that carry
	// it. Those rows update the member created by the first one.
	Repeats map[string][]int
}

func (d *DryRunResult) Creates() int {
	return len(d.Payloads) - d.Updates()
}

func (d *DryRunResult) Updates() int {
	n := 0
	for _, rows := range d.Repeats {
		n += len(rows)
	}
	return n
}

// DryRun decodes and validates a file the same way ImportFile does.
func DryRun(format Format, data []byte) (*DryRunResult, error) {
	rows, err := ReadRows(format, data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}

	headers, err := MapHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	payloads, rowErrs := ValidateRows(rows[1:], headers)

	seen := make(map[string]bool, len(payloads))
	repeats := make(map[string][]int)
	for _, p := range payloads {
		phone := p.Fields.Phone
		if seen[phone] {
			repeats[phone] = append(repeats[phone], p.Row)
			continue
		}
		seen[phone] = true
	}

	return &DryRunResult{
		Payloads: payloads,
		Errors:   rowErrs,
		Repeats:  repeats,
	}, nil
}
