// Package routes decides whether a (path, method) pair is publicly
// accessible given a declarative allow list.
//
// A Rule matches in one of three ways, evaluated in list order with the
// first match winning:
//
//   - "/public/*"    suffix wildcard: any path under the prefix
//   - "/health"      exact path and method
//   - "/users/:id"   parameter segments: ":id" matches any single segment
//
// A rule method of "*" stands for every supported HTTP verb. An empty rule
// list makes nothing public.
package routes
