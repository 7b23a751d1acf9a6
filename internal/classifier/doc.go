// Package classifier implements the two-stage blank-page decision.
//
// Stage one inspects the embedded text layer: any page with stripped
// text is kept immediately, without touching OCR. Stage two rasterizes
// text-blank pages and runs them through the OCR engine; only when OCR
// also finds next to nothing is the page finally classified blank.
//
// The failure policy is deliberately asymmetric: any rasterization or
// recognition failure keeps the page. A tooling failure must never cause
// content to be destroyed.
package classifier
