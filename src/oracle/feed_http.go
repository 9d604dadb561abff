package oracle

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/go-resty/resty/v2"
)

type httpFeedResponse struct {
	Answer    string `json:"answer"`
	UpdatedAt int64  `json:"updatedAt"`
	Decimals  uint8  `json:"decimals"`
}

// Feed reading a JSON document: {"answer": "123", "updatedAt": <unix seconds>, "decimals": 8}
type HttpFeed struct {
	client *resty.Client
	url    string
}

func NewHttpFeed(url string, timeout time.Duration) (self *HttpFeed) {
	self = new(HttpFeed)
	self.url = url
	self.client = resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return
}

func (self *HttpFeed) get(ctx context.Context) (out *httpFeedResponse, err error) {
	out = new(httpFeedResponse)
	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(out).
		ForceContentType("application/json").
		Get(self.url)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("feed request failed with status %d", resp.StatusCode())
	}
	return
}

func (self *HttpFeed) LatestRoundData(ctx context.Context) (round *RoundData, err error) {
	resp, err := self.get(ctx)
	if err != nil {
		return
	}

	answer, ok := new(big.Int).SetString(resp.Answer, 10)
	if !ok {
		err = fmt.Errorf("%w: answer %q", ErrUnexpectedOutput, resp.Answer)
		return
	}

	round = &RoundData{
		Answer:    answer,
		UpdatedAt: time.Unix(resp.UpdatedAt, 0),
	}
	return
}

func (self *HttpFeed) Decimals(ctx context.Context) (decimals uint8, err error) {
	resp, err := self.get(ctx)
	if err != nil {
		return
	}
	return resp.Decimals, nil
}
