// Package vortex identifies vortices in PIV fields with the Γ1 and Γ2
// criteria of Graftieaux, Michard & Grosjean (Meas. Sci. Technol. 12, 2001).
//
// For a point P and the (2n+1)×(2n+1) window S around it:
//
//	Γ1(P) = mean over M ∈ S of  (PM × U_M) / (|PM|·|U_M|)
//	Γ2(P) = same with U_M replaced by U_M − Ũ_P, Ũ_P the window mean
//
// where PM × U = PMx·v − PMy·u. Terms that are undefined (M = P, zero or
// masked velocity) are skipped and an empty mean yields 0. |Γ1| peaks at
// vortex centres; |Γ2| > 2/π marks a region dominated by rotation, i.e. a
// vortex core.
//
// Gamma1 and Gamma2 return datasets whose W holds the criterion. Detect
// thresholds Γ2, groups the core cells into connected regions and reports
// each vortex with its centre, rotation sense, area and circulation.
//
// Rows of each frame are computed concurrently on a bounded errgroup and the
// computation stops when the context is cancelled.
package vortex
