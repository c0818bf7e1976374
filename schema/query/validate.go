package query

import (
	"strconv"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
)

// FieldsRule checks that every field of the fields parameter is a public
// attribute of s. The * wildcard is accepted.
func FieldsRule(s *schema.Schema, fields string) error {
	var errs Errors
	for _, f := range splitList(fields) {
		if f == "*" || s.GetField(f) != nil {
			continue
		}
		errs = append(errs, &Error{Kind: UnknownField, Param: ParamFields, Identifier: f, Resource: s.Name})
	}
	return errs.errOrNil()
}

// RelationsRule checks that every relation of the relations parameter is a
// relation of s.
func RelationsRule(s *schema.Schema, relations string) error {
	var errs Errors
	for _, r := range splitList(relations) {
		if s.GetRelation(r) == nil {
			errs = append(errs, &Error{Kind: UnknownRelation, Param: ParamRelations, Identifier: r, Resource: s.Name})
		}
	}
	return errs.errOrNil()
}

// SortRule checks that every sort token, with its direction prefix stripped,
// is a public attribute of s.
func SortRule(s *schema.Schema, sort string) error {
	var errs Errors
	for _, sf := range ParseSort(sort) {
		if s.GetField(sf.Name) == nil {
			errs = append(errs, &Error{Kind: UnknownSortField, Param: ParamSort, Identifier: sf.Name, Resource: s.Name})
		}
	}
	return errs.errOrNil()
}

// PageRule checks that page is an integer greater than zero and size an
// integer between 1 and MaxPageSize. Empty values are not checked.
func PageRule(page, size string) error {
	var errs Errors
	if page != "" {
		if n, err := strconv.Atoi(page); err != nil || n < 1 {
			errs = append(errs, &Error{Kind: InvalidPage, Param: ParamPage, Identifier: page,
				Reason: "must be an integer greater than 0"})
		}
	}
	if size != "" {
		if n, err := strconv.Atoi(size); err != nil || n < 1 || n > MaxPageSize {
			errs = append(errs, &Error{Kind: InvalidPage, Param: ParamPageSize, Identifier: size,
				Reason: "must be an integer between 1 and " + strconv.Itoa(MaxPageSize)})
		}
	}
	return errs.errOrNil()
}

// FiltersRule checks that every filter parameter names a public attribute of s
// or the mediated name of one of its proxies.
func FiltersRule(s *schema.Schema, params Params) error {
	var errs Errors
	for _, p := range params {
		if IsReserved(p.Name) || s.GetField(p.Name) != nil {
			continue
		}
		if _, found := s.Mediated(p.Name); found {
			continue
		}
		errs = append(errs, &Error{Kind: UnknownField, Param: p.Name, Identifier: p.Name, Resource: s.Name})
	}
	return errs.errOrNil()
}

// Validate runs all the rules against params. All the rules are run and their
// errors are returned together as Errors.
func Validate(s *schema.Schema, params Params) error {
	var errs Errors
	for _, err := range []error{
		FieldsRule(s, params.Value(ParamFields)),
		RelationsRule(s, params.Value(ParamRelations)),
		SortRule(s, params.Value(ParamSort)),
		PageRule(params.Value(ParamPage), params.Value(ParamPageSize)),
		FiltersRule(s, params),
	} {
		if e, ok := err.(Errors); ok {
			errs = append(errs, e...)
		}
	}
	return errs.errOrNil()
}
