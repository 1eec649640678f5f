package worth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeWorth(t *testing.T) {
	type args struct {
		amount     Amount
		historical Price
		current    Price
	}
	tests := []struct {
		name    string
		args    args
		want    Amount
		wantErr bool
	}{
		{
			"thousand at ten thousand, now fifty thousand",
			args{1000, 10000, 50000},
			5000,
			false,
		},
		{
			"unit amounts",
			args{1, 1, 1},
			1,
			false,
		},
		{
			"price dropped",
			args{1000, 50000, 10000},
			200,
			false,
		},
		{
			"zero amount",
			args{0, 10000, 50000},
			0,
			false,
		},
		{
			"zero historical price",
			args{1000, 0, 50000},
			0,
			true,
		},
		{
			"negative historical price",
			args{1000, -1, 50000},
			0,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeWorth(tt.args.amount, tt.args.historical, tt.args.current)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidComputation))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeWorth_ExactFloatSemantics(t *testing.T) {
	amount, historical, current := Amount(1000), Price(10000), Price(50000)
	got, err := ComputeWorth(amount, historical, current)
	assert.Nil(t, err)
	assert.Equal(t, Amount(float64(amount)/float64(historical)*float64(current)), got)
}

func TestFormatWorth(t *testing.T) {
	assert.Equal(t, "5,000.00", FormatWorth(5000))
	assert.Equal(t, "0.00", FormatWorth(0))
	assert.Equal(t, "1,234,567.89", FormatWorth(1234567.891))
	assert.Equal(t, "0.50", FormatWorth(0.5))
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("1000")
	assert.Nil(t, err)
	assert.Equal(t, Amount(1000), amount)

	amount, err = ParseAmount(" 12.5 ")
	assert.Nil(t, err)
	assert.Equal(t, Amount(12.5), amount)

	_, err = ParseAmount("-1")
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = ParseAmount("abc")
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	_, err = ParseAmount("")
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, ValidateDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Nil(t, ValidateDate(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC), now))
	assert.True(t, errors.Is(ValidateDate(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), now), ErrFutureDate))
}
