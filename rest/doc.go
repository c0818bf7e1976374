/*
Package rest is a `net/http` handler serving the resources of a resource.Index
as a read-only REST API.

Two routes are served per resource:

	GET /{resource}       lists the items matching the query parameters
	GET /{resource}/{id}  shows a single item

Lists accept the fields, relations, sort, page and page_size parameters plus
any number of filters (see schema/query). Items accept fields and relations.
Every parameter is validated before any storage access; invalid parameters are
reported with a 422 status and per parameter issues.
*/
package rest
