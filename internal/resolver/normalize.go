package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
)

var (
	fipeCodePattern = regexp.MustCompile(`^\d{6}-?\d$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
	bankCodePattern = regexp.MustCompile(`^\d{1,3}$`)
	fipeIDPattern   = regexp.MustCompile(`^\d{1,9}$`)
	modelYearCode   = regexp.MustCompile(`^\d{4,5}-\d$`)
)

// Vehicle types accepted by the FIPE brands lookup
var vehicleTypes = map[string]bool{
	"carros":    true,
	"motos":     true,
	"caminhoes": true,
}

// NormalizeCEP validates a postal code and returns its 8 digits
func NormalizeCEP(raw string) (string, error) {
	if err := pattern.CheckCEP(raw); err != nil {
		return "", err
	}
	return pattern.CleanCEP(raw), nil
}

// NormalizeCNPJ validates a CNPJ and returns its 14 digits
func NormalizeCNPJ(raw string) (string, error) {
	if err := checksum.CheckCNPJ(raw); err != nil {
		return "", err
	}
	return checksum.Clean(raw), nil
}

// NormalizeBankCode zero-pads a compensation code to 3 digits
func NormalizeBankCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if !bankCodePattern.MatchString(code) {
		return "", model.NewFormatError(model.KindBank, raw, "expected 1 to 3 digits")
	}
	n, _ := strconv.Atoi(code)
	return fmt.Sprintf("%03d", n), nil
}

// NormalizeYear accepts a 4-digit year between 1900 and 2199
func NormalizeYear(raw string) (string, error) {
	year := strings.TrimSpace(raw)
	if !yearPattern.MatchString(year) {
		return "", model.NewFormatError(model.KindHolidays, raw, "expected a 4-digit year")
	}
	if n, _ := strconv.Atoi(year); n < 1900 || n > 2199 {
		return "", model.NewFormatError(model.KindHolidays, raw, "year out of range")
	}
	return year, nil
}

// NormalizeDDD accepts a 2-digit area code present in the area code table
func NormalizeDDD(raw string) (string, error) {
	ddd := checksum.Clean(raw)
	if len(ddd) != 2 || len(strings.TrimSpace(raw)) > 4 {
		return "", model.NewFormatError(model.KindDDD, raw, "expected 2 digits")
	}
	if !pattern.IsKnownAreaCode(ddd) {
		return "", model.NewUnknownAreaCodeError(ddd)
	}
	return ddd, nil
}

// NormalizeUF accepts a federative unit abbreviation in any case
func NormalizeUF(raw string) (string, error) {
	uf := strings.ToUpper(strings.TrimSpace(raw))
	if len(pattern.AreaCodesForState(uf)) == 0 {
		return "", model.NewFormatError(model.KindMunicipalities, raw, "unknown federative unit")
	}
	return uf, nil
}

// NormalizeFIPECode accepts 000000-0 with or without the dash
func NormalizeFIPECode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if !fipeCodePattern.MatchString(code) {
		return "", model.NewFormatError(model.KindFIPE, raw, "expected 000000-0")
	}
	digits := strings.ReplaceAll(code, "-", "")
	return digits[:6] + "-" + digits[6:], nil
}

// NormalizeVehicleType accepts carros, motos or caminhoes
func NormalizeVehicleType(raw string) (string, error) {
	vt := strings.ToLower(strings.TrimSpace(raw))
	if !vehicleTypes[vt] {
		return "", model.NewFormatError(model.KindFIPEBrands, raw, "expected carros, motos or caminhoes")
	}
	return vt, nil
}

// NormalizeFIPEModelsKey accepts type/brand, e.g. carros/59
func NormalizeFIPEModelsKey(raw string) (string, error) {
	return normalizeFIPEKey(model.KindFIPEModels, raw, 2)
}

// NormalizeFIPEYearsKey accepts type/brand/model, e.g. carros/59/5940
func NormalizeFIPEYearsKey(raw string) (string, error) {
	return normalizeFIPEKey(model.KindFIPEYears, raw, 3)
}

// NormalizeFIPEVehicleKey accepts type/brand/model/year, e.g. carros/59/5940/2014-3
func NormalizeFIPEVehicleKey(raw string) (string, error) {
	return normalizeFIPEKey(model.KindFIPEVehicle, raw, 4)
}

// normalizeFIPEKey checks each segment of a Parallelum browse key: the vehicle
// type, then numeric brand and model codes, then a year code such as 2014-3
func normalizeFIPEKey(kind model.Kind, raw string, want int) (string, error) {
	segments := strings.Split(strings.Trim(strings.TrimSpace(raw), "/"), "/")
	if len(segments) != want {
		return "", model.NewFormatError(kind, raw, fmt.Sprintf("expected %d segments separated by /", want))
	}
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		switch {
		case i == 0:
			vt := strings.ToLower(seg)
			if !vehicleTypes[vt] {
				return "", model.NewFormatError(kind, raw, "expected carros, motos or caminhoes")
			}
			seg = vt
		case i == 3:
			if !modelYearCode.MatchString(seg) {
				return "", model.NewFormatError(kind, raw, "expected a year code like 2014-3")
			}
		default:
			if !fipeIDPattern.MatchString(seg) {
				return "", model.NewFormatError(kind, raw, "expected a numeric code")
			}
		}
		segments[i] = seg
	}
	return strings.Join(segments, "/"), nil
}

// ignoreValue is used by directory lookups that take no key
func ignoreValue(string) (string, error) {
	return "", nil
}
