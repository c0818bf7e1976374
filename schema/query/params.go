package query

import "strings"

// Reserved parameter names, all other parameters are filters.
const (
	ParamFields    = "fields"
	ParamRelations = "relations"
	ParamSort      = "sort"
	ParamPage      = "page"
	ParamPageSize  = "page_size"
)

// Param is a raw query-string parameter.
type Param struct {
	// Name is the parameter name without brackets.
	Name string

	// Value is the value of a plain parameter (name=value).
	Value string

	// Criteria holds the values of a bracketed parameter (name[token]=value)
	// in order of first appearance. It is nil for plain parameters.
	Criteria []Criterion
}

// Criterion is a criteria token with its raw value.
type Criterion struct {
	Token string
	Value string
}

// IsBracketed returns true if the parameter was given with the
// name[token]=value notation.
func (p Param) IsBracketed() bool {
	return p.Criteria != nil
}

// Params is the ordered list of raw parameters of a request.
type Params []Param

// ParseParams parses a raw query-string, preserving the order of the
// parameters. A repeated plain parameter keeps its last value; a repeated
// criteria token keeps its last value. Keys and values are decoded leniently
// (see unescape) so a bare % such as in status[lk]=Awaiting% is kept as is.
func ParseParams(raw string) Params {
	params := Params{}
	for raw != "" {
		var pair string
		if i := strings.IndexByte(raw, '&'); i != -1 {
			pair, raw = raw[:i], raw[i+1:]
		} else {
			pair, raw = raw, ""
		}
		if pair == "" {
			continue
		}
		key, value := pair, ""
		if i := strings.IndexByte(pair, '='); i != -1 {
			key, value = pair[:i], pair[i+1:]
		}
		params = params.add(unescape(key), unescape(value))
	}
	return params
}

// unescape decodes a query-string component: + is a space and %XX the byte
// XX. A % not followed by two hexadecimal digits is kept literally.
func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}

func (p Params) add(key, value string) Params {
	name, token, bracketed := splitKey(key)
	i := p.index(name)
	if i == -1 {
		param := Param{Name: name, Value: value}
		if bracketed {
			param.Value = ""
			param.Criteria = []Criterion{{Token: token, Value: value}}
		}
		return append(p, param)
	}
	param := &p[i]
	switch {
	case !bracketed:
		param.Value = value
		param.Criteria = nil
	case !param.IsBracketed():
		param.Value = ""
		param.Criteria = []Criterion{{Token: token, Value: value}}
	default:
		for j := range param.Criteria {
			if param.Criteria[j].Token == token {
				param.Criteria[j].Value = value
				return p
			}
		}
		param.Criteria = append(param.Criteria, Criterion{Token: token, Value: value})
	}
	return p
}

// splitKey splits name[token] into name and token.
func splitKey(key string) (name, token string, bracketed bool) {
	i := strings.IndexByte(key, '[')
	if i <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:i], key[i+1 : len(key)-1], true
}

func (p Params) index(name string) int {
	for i := range p {
		if p[i].Name == name {
			return i
		}
	}
	return -1
}

// Get returns the parameter named name.
func (p Params) Get(name string) (Param, bool) {
	if i := p.index(name); i != -1 {
		return p[i], true
	}
	return Param{}, false
}

// Value returns the value of the plain parameter named name or an empty
// string.
func (p Params) Value(name string) string {
	if param, found := p.Get(name); found && !param.IsBracketed() {
		return param.Value
	}
	return ""
}

// IsReserved returns true if name is one of the reserved parameter names.
func IsReserved(name string) bool {
	switch name {
	case ParamFields, ParamRelations, ParamSort, ParamPage, ParamPageSize:
		return true
	}
	return false
}

// splitList splits a coma separated list, trimming spaces and dropping empty
// elements.
func splitList(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	return list
}
