// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package kommons

// SemVersion is the semantic version string of the kommons module.
const SemVersion = "0.9.1"
