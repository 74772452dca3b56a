// Package shared holds helpers used by more than one package. The testutil
// subpackage is imported only from tests.
package shared
