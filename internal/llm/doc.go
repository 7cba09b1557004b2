// Package llm implements the external merchant classifier on top of
// hosted model APIs. The classification engine only sees the
// service.MerchantClassifier contract; provider choice, prompting, rate
// limiting, and retries all live here.
package llm
