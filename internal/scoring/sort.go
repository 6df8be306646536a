package scoring

import (
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/ca-vahid/hiring-manager/internal/models"
)

// SortOption selects the field and direction for ordering a candidate list.
// Simple fields (name, email, createdAt, updatedAt) sort directly; any other
// field is treated as a dot-path walked across the record, e.g.
// "scores.technical_skill" or "rating". Candidates where the path does not
// resolve sort after all resolved values in either direction.
type SortOption struct {
	Field      string
	Descending bool
}

// Sort returns a stably ordered copy of the candidate list. An empty field
// leaves the input order untouched.
func Sort(candidates []models.Candidate, opt SortOption) []models.Candidate {
	out := make([]models.Candidate, len(candidates))
	copy(out, candidates)
	if opt.Field == "" {
		return out
	}

	key := sortKeyFunc(opt.Field)
	sort.SliceStable(out, func(i, j int) bool {
		vi, oki := key(&out[i])
		vj, okj := key(&out[j])
		if oki != okj {
			// Missing values lose regardless of direction.
			return oki
		}
		if !oki {
			return false
		}
		c := compareValues(vi, vj)
		if opt.Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func sortKeyFunc(field string) func(*models.Candidate) (any, bool) {
	switch field {
	case "name":
		return func(c *models.Candidate) (any, bool) { return c.Name, true }
	case "email":
		return func(c *models.Candidate) (any, bool) { return c.Email, true }
	case "createdAt", "created_at":
		return func(c *models.Candidate) (any, bool) { return c.CreatedAt, true }
	case "updatedAt", "updated_at":
		return func(c *models.Candidate) (any, bool) { return c.UpdatedAt, true }
	default:
		return func(c *models.Candidate) (any, bool) { return lookupPath(c, field) }
	}
}

// lookupPath walks a dot-separated path across structs and maps, matching
// struct fields by json tag first and field name (case-insensitive) second.
// Any segment that fails to resolve, or resolves to a nil value, reports
// ok=false so the caller can treat it as missing.
func lookupPath(v any, path string) (any, bool) {
	current := reflect.ValueOf(v)
	for _, segment := range strings.Split(path, ".") {
		current = indirect(current)
		if !current.IsValid() {
			return nil, false
		}
		switch current.Kind() {
		case reflect.Struct:
			field, ok := structField(current, segment)
			if !ok {
				return nil, false
			}
			current = field
		case reflect.Map:
			if current.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			current = current.MapIndex(reflect.ValueOf(segment))
			if !current.IsValid() {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	current = indirect(current)
	if !current.IsValid() {
		return nil, false
	}
	return current.Interface(), true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag != "" {
			tag = strings.Split(tag, ",")[0]
		}
		if tag == name || strings.EqualFold(f.Name, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// compareValues orders two resolved sort keys: times chronologically,
// numbers numerically, strings case-insensitively. Incomparable or
// mixed-type pairs compare equal, which keeps the sort stable.
func compareValues(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
		return 0
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
		return 0
	}
	if sa, ok := asString(a); ok {
		if sb, ok := asString(b); ok {
			return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
		}
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
