package pattern

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
)

const (
	landlineLength = 10
	mobileLength   = 11
	countryCode    = "55"
)

// CleanPhone strips every non-digit character
func CleanPhone(raw string) string {
	return checksum.Clean(raw)
}

// ValidatePhone returns true if raw parses as a Brazilian phone number
func ValidatePhone(raw string) bool {
	_, err := ParsePhone(raw)
	return err == nil
}

// ParsePhone validates raw and splits it into area code and subscriber.
// A leading +55 is accepted when the remainder has 10 or 11 digits.
func ParsePhone(raw string) (model.PhoneNumber, error) {
	if strings.TrimSpace(raw) == "" {
		return model.PhoneNumber{}, model.NewFormatError(model.KindPhone, raw, "empty value")
	}
	for _, r := range raw {
		if !(r >= '0' && r <= '9') && !strings.ContainsRune("()-+. ", r) {
			return model.PhoneNumber{}, model.NewFormatError(model.KindPhone, raw, fmt.Sprintf("unexpected character %q", r))
		}
	}

	d := stripCountryCode(CleanPhone(raw))
	if len(d) != landlineLength && len(d) != mobileLength {
		return model.PhoneNumber{}, model.NewFormatError(model.KindPhone, raw,
			fmt.Sprintf("expected %d or %d digits, got %d", landlineLength, mobileLength, len(d)))
	}

	ddd := d[:2]
	state, err := StateForAreaCode(ddd)
	if err != nil {
		return model.PhoneNumber{}, err
	}

	phone := model.PhoneNumber{
		AreaCode:   ddd,
		Subscriber: d[2:],
		State:      state,
	}
	switch {
	case len(d) == mobileLength && d[2] == '9':
		phone.Type = model.PhoneMobile
	case len(d) == landlineLength && d[2] != '9':
		phone.Type = model.PhoneLandline
	case len(d) == mobileLength:
		return model.PhoneNumber{}, model.NewFormatError(model.KindPhone, raw, "mobile number must start with 9")
	default:
		return model.PhoneNumber{}, model.NewFormatError(model.KindPhone, raw, "landline number cannot start with 9")
	}
	return phone, nil
}

func stripCountryCode(d string) string {
	if (len(d) == landlineLength+2 || len(d) == mobileLength+2) && strings.HasPrefix(d, countryCode) {
		return d[2:]
	}
	return d
}

// FormatPhone renders (AA) NNNN-NNNN for landlines and (AA) NNNNN-NNNN for mobiles
func FormatPhone(raw string) (string, error) {
	phone, err := ParsePhone(raw)
	if err != nil {
		return "", err
	}
	return FormatPhoneNumber(phone), nil
}

// FormatPhoneNumber renders an already parsed number
func FormatPhoneNumber(p model.PhoneNumber) string {
	split := len(p.Subscriber) - 4
	return "(" + p.AreaCode + ") " + p.Subscriber[:split] + "-" + p.Subscriber[split:]
}

// GeneratePhone returns a random valid number of the given type as digits.
// Landlines start with 2 to 5.
func GeneratePhone(phoneType model.PhoneType, areaCode string) (string, error) {
	if !IsKnownAreaCode(areaCode) {
		return "", model.NewUnknownAreaCodeError(areaCode)
	}

	var b strings.Builder
	b.WriteString(areaCode)
	switch phoneType {
	case model.PhoneMobile:
		b.WriteByte('9')
		for i := 0; i < 8; i++ {
			b.WriteByte(byte('0' + rand.IntN(10)))
		}
	case model.PhoneLandline:
		b.WriteByte(byte('2' + rand.IntN(4)))
		for i := 0; i < 7; i++ {
			b.WriteByte(byte('0' + rand.IntN(10)))
		}
	default:
		return "", model.NewFormatError(model.KindPhone, string(phoneType), "type must be landline or mobile")
	}
	return b.String(), nil
}
