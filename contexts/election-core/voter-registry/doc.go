// Package voterregistry implements the eligibility allow list inside the
// election-core context. Registration is restricted to a single admin
// identity fixed at construction; eligibility lookups are open and never
// fail. There is no removal: the registry grows monotonically.
package voterregistry
