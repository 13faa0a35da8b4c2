package ftp

import (
	"io/fs"
	"strconv"
	"strings"
	"time"
	"unicode"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/c2fo/ftpvfs/backend/ftp/types"
)

const (
	weekdays = "SunMonTueWedThuFriSat"
	months   = "JanFebMarAprMayJunJulAugSepOctNovDec"
)

// column is one blank-separated field of a listing line and its byte offset.
type column struct {
	text  string
	start int
}

// listParser turns "ls -l" style LIST lines into entries. Dates without a year are placed in the past twelve
// months relative to now.
type listParser struct {
	now func() time.Time
	loc *time.Location
}

func newListParser(loc *time.Location, now func() time.Time) *listParser {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &listParser{now: now, loc: loc}
}

// parse returns false for lines that are not entries, "total N" headers included.
func (p *listParser) parse(line string) (*types.Entry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, "total") || line == "" {
		return nil, false
	}

	entry := &types.Entry{}
	kind, ok := fileType(line[0])
	if !ok {
		return nil, false
	}
	entry.Mode = kind
	entry.Type = _ftp.EntryTypeFile
	switch {
	case kind&fs.ModeDir != 0:
		entry.Type = _ftp.EntryTypeFolder
	case kind&fs.ModeSymlink != 0:
		entry.Type = _ftp.EntryTypeLink
	}

	rest := line[1:]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, "[") {
		// Novell permission block, e.g. [RWCEAFMS]
		if len(rest) <= 8 || rest[8] != ']' {
			return nil, false
		}
		if entry.IsDir() {
			entry.Mode |= 0o755
		} else {
			entry.Mode |= 0o644
		}
		rest = rest[9:]
	} else {
		perms, n, ok := filePerms(rest)
		if !ok {
			return nil, false
		}
		entry.Mode |= perms
		rest = rest[n:]
	}

	cols := splitColumns(rest)
	if len(cols) < 2 {
		return nil, false
	}
	links, err := strconv.Atoi(cols[0].text)
	if err != nil || links <= 0 {
		return nil, false
	}
	entry.Links = links
	entry.Owner = cols[1].text

	device := entry.Mode&fs.ModeDevice != 0

	// the date starts at column 3, 4 or 5 depending on the group and device columns
	idx := 3
	for ; idx <= 5; idx++ {
		if idx < len(cols) && isDateStart(cols[idx].text) {
			break
		}
	}
	if idx == 6 || (idx == 5 && !device) {
		return nil, false
	}

	sizeIdx := 3
	if idx == 3 || (idx == 4 && device) {
		sizeIdx = 2
	} else {
		entry.Group = cols[2].text
	}

	if device {
		if !parseDevice(cols, sizeIdx) {
			return nil, false
		}
	} else {
		if !isNum(cols, sizeIdx) {
			return nil, false
		}
		entry.Size, _ = strconv.ParseUint(leadingDigits(cols[sizeIdx].text), 10, 64)
	}

	t, next, ok := p.parseDate(cols, idx)
	if !ok || next >= len(cols) {
		return nil, false
	}
	entry.Time = t

	entry.Name = rest[cols[next].start:]
	if entry.Type == _ftp.EntryTypeLink {
		for i := next + 1; i < len(cols); i++ {
			if cols[i].text == "->" {
				entry.Name = rest[cols[next].start : cols[i].start-1]
				if i+1 < len(cols) {
					entry.Target = rest[cols[i+1].start:]
				}
				break
			}
		}
	}
	if entry.Name == "" {
		return nil, false
	}
	return entry, true
}

func fileType(c byte) (fs.FileMode, bool) {
	switch c {
	case 'd':
		return fs.ModeDir, true
	case 'b':
		return fs.ModeDevice, true
	case 'c':
		return fs.ModeDevice | fs.ModeCharDevice, true
	case 'l':
		return fs.ModeSymlink, true
	case 's':
		return fs.ModeSocket, true
	case 'D', 'p':
		return fs.ModeNamedPipe, true
	case 'n', 'm', '-', '?':
		return 0, true
	}
	return 0, false
}

// filePerms parses the nine permission characters and an optional ACL marker.
func filePerms(s string) (fs.FileMode, int, bool) {
	if len(s) < 9 {
		return 0, 0, false
	}
	var perms fs.FileMode
	bit := func(c, want byte, b fs.FileMode) bool {
		switch c {
		case '-':
			return true
		case want:
			perms |= b
			return true
		}
		return false
	}

	if !bit(s[0], 'r', 0o400) || !bit(s[1], 'w', 0o200) {
		return 0, 0, false
	}
	switch s[2] {
	case '-':
	case 'x':
		perms |= 0o100
	case 's':
		perms |= 0o100 | fs.ModeSetuid
	case 'S':
		perms |= fs.ModeSetuid
	default:
		return 0, 0, false
	}

	if !bit(s[3], 'r', 0o040) || !bit(s[4], 'w', 0o020) {
		return 0, 0, false
	}
	switch s[5] {
	case '-':
	case 'x':
		perms |= 0o010
	case 's':
		perms |= 0o010 | fs.ModeSetgid
	case 'S', 'l':
		perms |= fs.ModeSetgid
	default:
		return 0, 0, false
	}

	if !bit(s[6], 'r', 0o004) || !bit(s[7], 'w', 0o002) {
		return 0, 0, false
	}
	switch s[8] {
	case '-':
	case 'x':
		perms |= 0o001
	case 't':
		perms |= 0o001 | fs.ModeSticky
	case 'T':
		perms |= fs.ModeSticky
	default:
		return 0, 0, false
	}

	n := 9
	if len(s) > 9 && s[9] == '+' {
		n++
	}
	return perms, n, true
}

// splitColumns splits on blanks only, so names keep their tabs.
func splitColumns(s string) []column {
	var cols []column
	i := 0
	for i < len(s) {
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		if i == len(s) {
			break
		}
		start := i
		for i < len(s) && !isBlank(s[i]) {
			i++
		}
		cols = append(cols, column{text: s[start:i], start: start})
	}
	return cols
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n'
}

func isNum(cols []column, idx int) bool {
	return idx < len(cols) && cols[idx].text != "" && cols[idx].text[0] >= '0' && cols[idx].text[0] <= '9'
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func atoiPrefix(s string) int {
	n, _ := strconv.Atoi(leadingDigits(s))
	return n
}

// parseDevice checks the "maj, min" (or "maj,min") columns of a device entry.
func parseDevice(cols []column, idx int) bool {
	if !isNum(cols, idx) && idx == 2 {
		idx++
		if !isNum(cols, idx) {
			return false
		}
		maj, min, ok := strings.Cut(cols[idx].text, ",")
		return ok && leadingDigits(maj) != "" && leadingDigits(min) != ""
	}
	if !isNum(cols, idx) || !strings.Contains(cols[idx].text, ",") {
		return false
	}
	return isNum(cols, idx+1)
}

func isDateStart(s string) bool {
	_, month := monthOf(s)
	return month || isWeekday(s) || isDOSDate(s) || isLocalizedMonth(s)
}

func monthOf(s string) (time.Month, bool) {
	if len(s) != 3 {
		return 0, false
	}
	i := strings.Index(months, s)
	if i < 0 || i%3 != 0 {
		return 0, false
	}
	return time.Month(i/3 + 1), true
}

func isWeekday(s string) bool {
	if len(s) != 3 {
		return false
	}
	i := strings.Index(weekdays, s)
	return i >= 0 && i%3 == 0
}

// isDOSDate matches MM-DD-YY and MM-DD-YYYY with '-', '/' or '\' separators.
func isDOSDate(s string) bool {
	if len(s) != 8 && len(s) != 10 {
		return false
	}
	return s[2] == s[5] && strings.ContainsRune(`\-/`, rune(s[2]))
}

func isLocalizedMonth(s string) bool {
	r := []rune(s)
	if len(r) != 3 {
		return false
	}
	for _, c := range r {
		if unicode.IsDigit(c) || unicode.IsControl(c) || unicode.IsPunct(c) {
			return false
		}
	}
	return true
}

func parseClock(s string) (h, m, sec int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	vals := make([]int, 3)
	for i, part := range parts {
		d := leadingDigits(part)
		if d == "" || len(d) > 2 {
			return 0, 0, 0, false
		}
		vals[i], _ = strconv.Atoi(d)
	}
	return vals[0], vals[1], vals[2], true
}

func parseYear(s string) (int, bool) {
	if len(s) != 4 || strings.Contains(s, ":") {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 3000 {
		return 0, false
	}
	return y, true
}

// parseDate reads "Mon DD hh:mm[:ss]", "Mon DD YYYY" or "MM-DD-YY[YY] hh:mm[:ss]" starting at idx, optionally
// preceded by a weekday, and returns the index of the column after the date.
func (p *listParser) parseDate(cols []column, idx int) (time.Time, int, bool) {
	now := p.now().In(p.loc)
	year, month, day := now.Date()
	var hour, minute, sec int
	gotYear, localized := false, false

	next := func() (string, bool) {
		if idx >= len(cols) {
			return "", false
		}
		idx++
		return cols[idx-1].text, true
	}

	col, ok := next()
	if !ok {
		return time.Time{}, 0, false
	}
	if isWeekday(col) {
		if col, ok = next(); !ok {
			return time.Time{}, 0, false
		}
	}

	if m, ok := monthOf(col); ok {
		if !isNum(cols, idx) {
			return time.Time{}, 0, false
		}
		month = m
		day = atoiPrefix(cols[idx].text)
		idx++
	} else if isDOSDate(col) {
		fields := strings.FieldsFunc(col, func(r rune) bool { return r == '-' || r == '/' || r == '\\' })
		if len(fields) != 3 {
			return time.Time{}, 0, false
		}
		mon, err1 := strconv.Atoi(fields[0])
		d, err2 := strconv.Atoi(fields[1])
		y, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, 0, false
		}
		switch {
		case y >= 1900:
		case y < 70:
			y += 2000
		default:
			y += 1900
		}
		if mon < 1 {
			mon = 1
		}
		year, month, day = y, time.Month(mon), d
		gotYear = true
	} else if isLocalizedMonth(col) && isNum(cols, idx) {
		idx++
		localized = true
	} else {
		return time.Time{}, 0, false
	}

	if !isNum(cols, idx) {
		return time.Time{}, 0, false
	}
	if h, m, s, ok := parseClock(cols[idx].text); ok {
		hour, minute, sec = h, m, s
	} else if y, ok := parseYear(cols[idx].text); ok {
		year = y
		gotYear = true
	} else {
		return time.Time{}, 0, false
	}
	idx++

	if localized {
		return time.Time{}, idx, true
	}

	t := time.Date(year, month, day, hour, minute, sec, 0, p.loc)
	// "Mon DD hh:mm" is only used for recent files; a date ahead of now belongs to last year
	if !gotYear && t.After(now.Add(24*time.Hour)) {
		t = t.AddDate(-1, 0, 0)
	}
	return t, idx, true
}
