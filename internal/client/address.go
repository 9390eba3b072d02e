// Package client holds the HTTP clients for the two upstream providers:
// the address-search API and the geocoding API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"location-api/internal/models"

	"github.com/rs/zerolog/log"
)

const (
	// addressPageSize is fixed: a region-code aggregation over the first 500
	// rows is more than enough to enumerate every distinct region a keyword
	// can match.
	addressPageSize = "500"
	addressPage     = "1"

	// codeNormal is the provider's "no error" sentinel in the response envelope.
	codeNormal = "0"
)

// UpstreamErrorKind classifies an address-search failure.
type UpstreamErrorKind string

const (
	UpstreamTransport UpstreamErrorKind = "transport"
	UpstreamProvider  UpstreamErrorKind = "provider"
	UpstreamParse     UpstreamErrorKind = "parse"
)

// UpstreamError is an address-search provider failure. The search service
// absorbs it; it never reaches the API caller.
type UpstreamError struct {
	Kind        UpstreamErrorKind
	Status      int    // transport only
	Code        string // provider only
	Message     string
	Remediation string
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamTransport:
		if e.Status != 0 {
			return fmt.Sprintf("address search: transport failure, status %d", e.Status)
		}
		return fmt.Sprintf("address search: transport failure: %s", e.Message)
	case UpstreamProvider:
		return fmt.Sprintf("address search: provider error %s: %s (%s)", e.Code, e.Message, e.Remediation)
	default:
		return fmt.Sprintf("address search: %s", e.Message)
	}
}

// providerCodes maps the provider's documented error codes to a message and
// the remediation its manual suggests.
var providerCodes = map[string]struct {
	message     string
	remediation string
}{
	"-999":  {"시스템 에러", "관리자에게 문의해 주시기 바랍니다."},
	"E0001": {"승인되지 않은 KEY 입니다.", "정확한 승인키를 입력해 주시기 바랍니다."},
	"E0005": {"검색어가 입력되지 않았습니다.", "검색어를 입력해 주시기 바랍니다."},
	"E0006": {"주소를 상세히 입력해 주시기 바랍니다.", "시도명으로는 검색이 불가합니다."},
	"E0008": {"검색어는 두 글자 이상 입력되어야 합니다.", "두 글자 이상의 검색어를 입력해 주시기 바랍니다."},
	"E0009": {"검색어는 문자와 숫자 같이 입력되어야 합니다.", "숫자만으로는 검색이 불가합니다."},
	"E0010": {"검색어가 너무 깁니다.", "80자 이내로 입력해 주시기 바랍니다."},
	"E0011": {"검색어에 너무 긴 숫자가 포함되어 있습니다.", "10자 이내의 숫자로 입력해 주시기 바랍니다."},
	"E0012": {"특수문자와 숫자만으로 구성된 검색어는 사용할 수 없습니다.", "검색어를 변경해 주시기 바랍니다."},
	"E0013": {"SQL 예약어가 포함된 검색어는 사용할 수 없습니다.", "검색어를 변경해 주시기 바랍니다."},
	"E0014": {"개발승인키 기간이 만료되었습니다.", "승인키를 재발급 받아 주시기 바랍니다."},
	"E0015": {"검색 범위를 초과하였습니다.", "검색 조건을 좁혀 주시기 바랍니다."},
}

type addressEnvelope struct {
	Results struct {
		Common struct {
			ErrorCode    string `json:"errorCode"`
			ErrorMessage string `json:"errorMessage"`
		} `json:"common"`
		Juso []models.RawAddress `json:"juso"`
	} `json:"results"`
}

// AddressClient is the HTTP client for the address-search provider.
type AddressClient struct {
	httpClient *http.Client
	baseURL    string
	confmKey   string
}

// NewAddressClient creates an address-search client for the given endpoint
// and approval key.
func NewAddressClient(baseURL, confmKey string) *AddressClient {
	return &AddressClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		confmKey:   confmKey,
	}
}

// Search runs one keyword search and returns the raw address rows in provider
// order. A single synchronous call, no retry: any failure is terminal for
// this invocation.
func (c *AddressClient) Search(ctx context.Context, keyword string) ([]models.RawAddress, error) {
	params := url.Values{}
	params.Set("confmKey", c.confmKey)
	params.Set("currentPage", addressPage)
	params.Set("countPerPage", addressPageSize)
	params.Set("keyword", keyword)
	params.Set("resultType", "json")

	reqURL := c.baseURL + "?" + params.Encode()
	log.Info().Str("url", c.baseURL).Str("keyword", keyword).Msg("calling address search API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: UpstreamTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Kind: UpstreamTransport, Status: resp.StatusCode}
	}

	var envelope addressEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &UpstreamError{Kind: UpstreamParse, Message: err.Error()}
	}

	code := envelope.Results.Common.ErrorCode
	if code != codeNormal {
		known, ok := providerCodes[code]
		if !ok {
			known.message = envelope.Results.Common.ErrorMessage
			known.remediation = "알 수 없는 오류 코드입니다."
		}
		return nil, &UpstreamError{
			Kind:        UpstreamProvider,
			Code:        code,
			Message:     known.message,
			Remediation: known.remediation,
		}
	}

	return envelope.Results.Juso, nil
}
