package streamv1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simx-exchange/market-feed-service/pkg/errors"
)

func TestSubscribeRequest_Normalize(t *testing.T) {
	request := SubscribeRequest{Symbols: []string{" aapl", "Msft ", "GOOG"}}
	request.Normalize()

	assert.Equal(t, []string{"AAPL", "MSFT", "GOOG"}, request.Symbols)
}

func TestSubscribeRequest_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		symbols []string
		wantErr bool
	}{
		{name: "valid list", symbols: []string{"AAPL", "MSFT"}},
		{name: "single symbol", symbols: []string{"AAPL"}},
		{name: "empty list", symbols: nil, wantErr: true},
		{name: "blank symbol", symbols: []string{"AAPL", ""}, wantErr: true},
		{name: "duplicate symbol", symbols: []string{"AAPL", "AAPL"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := SubscribeRequest{Symbols: tc.symbols}

			err := request.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.InvalidStreamRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}
