package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/closeops/schemasync/pkg/errors"
	"github.com/closeops/schemasync/pkg/logging"
)

// DecodeResponse decodes a JSON response into the target structure. A
// non-2xx status becomes a typed APIError carrying the response body as
// its message. target may be nil for responses whose body is irrelevant
// (deletes).
func DecodeResponse(env string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Env:        env,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
