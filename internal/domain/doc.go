// Package domain contains the core business entities, value objects, and
// domain logic of the taskboard: swimlanes, the projects inside them and the
// tasks inside projects. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
