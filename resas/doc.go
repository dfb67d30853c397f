// Package resas provides a client for the RESAS regional statistics API.
//
// RESAS (Regional Economy Society Analyzing System) publishes Japanese
// regional reference data behind a key-authenticated JSON API. This package
// implements the request layer: authentication, response decoding, and the
// retry policy for transient server failures.
//
// # Architecture
//
// The package is organized into a few components:
//
//   - Client: the API client owning the connection pool, key, and retry policy
//   - Types: wire models for prefectures and cities plus the response envelope
//   - Errors: the Fatal/Retryable error taxonomy driving the retry loop
//
// # Usage
//
// Create a client with your API key and a retry policy:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := resas.NewClient(apiKey, resas.DefaultRetryPolicy(), logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	prefs, err := client.Prefectures(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, pref := range prefs {
//		cities, err := client.Cities(ctx, pref.PrefCode)
//		...
//	}
//
// Arbitrary endpoints can be fetched with the generic Get function, which
// decodes the envelope's result array into any row type.
//
// # Error Handling
//
// Every failure is reported as *Error, classified as either fatal or
// retryable. The API signals transient failure two ways: through the HTTP
// status, and through an application-level statusCode embedded in the body
// of an HTTP 200 response. Both are checked against the policy's retriable
// code set. Transport and decoding failures are always fatal.
//
// With retries enabled the client resolves retryable failures internally,
// either by succeeding on a later attempt or by escalating to a fatal error
// once the attempt budget is spent; callers then only ever observe fatal
// errors. A single-attempt request can surface a retryable error directly,
// leaving the retry decision to the caller.
package resas
