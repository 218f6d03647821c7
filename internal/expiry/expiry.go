package expiry

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// MMYY formats a card expiry for the DATEVAL field: month padded to two digits,
// year padded to four digits of which the last two are kept.
func MMYY(month, year int) (string, error) {
    if month < 1 || month > 12 {
        return "", fmt.Errorf("expiry month must be 1..12 (got %d)", month)
    }
    if year < 0 || year > 9999 {
        return "", fmt.Errorf("expiry year must be 0..9999 (got %d)", year)
    }
    y := fmt.Sprintf("%04d", year)
    return fmt.Sprintf("%02d", month) + y[2:], nil
}

// CardFace returns expiry as MM/YY.
func CardFace(month, year int) string {
    return fmt.Sprintf("%02d/%02d", month, year%100)
}

// ParseMMYY parses the DATEVAL layout back into month and four digit year.
func ParseMMYY(mmyy string) (month, year int, err error) {
    if err := ValidateMMYY(mmyy); err != nil {
        return 0, 0, err
    }
    month, _ = strconv.Atoi(mmyy[:2])
    yy, _ := strconv.Atoi(mmyy[2:])
    return month, 2000 + yy, nil
}

// ParseCardFace accepts "MM/YY", "MMYY" or "MM/YYYY" and returns month and four digit year.
func ParseCardFace(in string) (month, year int, err error) {
    s := strings.TrimSpace(in)
    if mm, yyyy, ok := strings.Cut(s, "/"); ok && len(yyyy) == 4 {
        m, errM := strconv.Atoi(mm)
        y, errY := strconv.Atoi(yyyy)
        if errM != nil || errY != nil {
            return 0, 0, fmt.Errorf("card face must be digits")
        }
        if m < 1 || m > 12 {
            return 0, 0, fmt.Errorf("month must be 01..12")
        }
        return m, y, nil
    }
    s = strings.ReplaceAll(s, "/", "")
    if len(s) != 4 {
        return 0, 0, fmt.Errorf("card face must be MM/YY or MMYY")
    }
    return ParseMMYY(s)
}

// EndOfMonth returns the last instant of the expiry month in loc (UTC when nil).
func EndOfMonth(month, year int, loc *time.Location) time.Time {
    if loc == nil {
        loc = time.UTC
    }
    firstNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
    return firstNext.Add(-time.Nanosecond)
}

// IsExpired reports whether 'at' is strictly after the end of the expiry month.
func IsExpired(month, year int, at time.Time, loc *time.Location) bool {
    end := EndOfMonth(month, year, loc)
    return at.In(end.Location()).After(end)
}

// ValidateMMYY 校验到期格式为 MMYY，且月份在 01..12。
func ValidateMMYY(mmyy string) error {
    if len(mmyy) != 4 {
        return fmt.Errorf("expiry must be MMYY (4 digits)")
    }
    for i := 0; i < 4; i++ {
        if mmyy[i] < '0' || mmyy[i] > '9' {
            return fmt.Errorf("expiry must be digits: MMYY")
        }
    }
    mm := int(mmyy[0]-'0')*10 + int(mmyy[1]-'0')
    if mm < 1 || mm > 12 {
        return fmt.Errorf("expiry month must be 01..12")
    }
    return nil
}
