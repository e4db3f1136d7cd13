package httputil

import (
	"net/http"
	"strconv"
	"testing"
	"time"
)

func notBefore(d int) time.Time {
	return time.Now().UTC().Add(time.Duration(d-1) * time.Second)
}

func notAfter(d int) time.Time {
	return time.Now().UTC().Add(time.Duration(d+10) * time.Second)
}

func Test_ParseRetryAfter(t *testing.T) {
	testCases := []struct {
		name              string
		response          *http.Response
		expectedNotBefore time.Time
		expectedNotAfter  time.Time
		errorMatcher      func(err error) bool
	}{
		{
			name: "case 0: single delay-seconds value",
			response: &http.Response{
				Header: map[string][]string{
					"Retry-After": {"120"},
				},
			},
			expectedNotBefore: notBefore(120),
			expectedNotAfter:  notAfter(120),
		},
		{
			name: "case 1: single http-date value",
			response: &http.Response{
				Header: map[string][]string{
					"Retry-After": {time.Now().UTC().Add(120 * time.Second).Format(http.TimeFormat)},
				},
			},
			expectedNotBefore: notBefore(120),
			expectedNotAfter:  notAfter(120),
		},
		{
			name: "case 2: first parseable value wins",
			response: &http.Response{
				Header: map[string][]string{
					"Retry-After": {"garbage", "120", "900"},
				},
			},
			expectedNotBefore: notBefore(120),
			expectedNotAfter:  notAfter(120),
		},
		{
			name: "case 3: missing header",
			response: &http.Response{
				Header: map[string][]string{},
			},
			errorMatcher: IsParse,
		},
		{
			name:         "case 4: nil response",
			response:     nil,
			errorMatcher: IsParse,
		},
		{
			name: "case 5: unparseable value",
			response: &http.Response{
				Header: map[string][]string{
					"Retry-After": {"soon"},
				},
			},
			errorMatcher: IsParse,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			retryAfter, err := ParseRetryAfter(tc.response)

			switch {
			case err == nil && tc.errorMatcher == nil:
				// correct; carry on
			case err != nil && tc.errorMatcher == nil:
				t.Fatalf("error == %#v, want nil", err)
			case err == nil && tc.errorMatcher != nil:
				t.Fatalf("error == nil, want non-nil")
			case !tc.errorMatcher(err):
				t.Fatalf("error == %#v, want matching", err)
			}

			if err != nil {
				return
			}

			if retryAfter.Before(tc.expectedNotBefore) {
				t.Fatalf("got %q, expected after %q", retryAfter, tc.expectedNotBefore)
			}
			if retryAfter.After(tc.expectedNotAfter) {
				t.Fatalf("got %q, expected before %q", retryAfter, tc.expectedNotAfter)
			}
		})
	}
}
