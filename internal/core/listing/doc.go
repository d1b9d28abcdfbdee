// Package listing holds the pure parts of the storefront listing pipeline:
// parsing of price bounds and sort specifications, the filter criteria handed
// to the product store, and the fixed-size pagination window.
//
// Nothing here performs I/O. The store renders Criteria into its own query
// language; see the mongo repository for the stage order.
package listing
