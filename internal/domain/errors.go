package domain

import "errors"

var (
	// ErrMissingFdcID is returned when a food record has no fdcId
	ErrMissingFdcID = errors.New("food record is missing fdcId")

	// ErrMissingDescription is returned when a food record has no string description
	ErrMissingDescription = errors.New("food record is missing description")

	// ErrInvalidDataset is returned when the input is not an FDC dataset object
	ErrInvalidDataset = errors.New("invalid FDC dataset")

	// ErrUnsupportedDataType is returned for foods outside the Foundation and SR Legacy collections
	ErrUnsupportedDataType = errors.New("unsupported FDC data type")

	// ErrProductNotFound is returned when a food cannot be found in the USDA database
	ErrProductNotFound = errors.New("food not found in USDA database")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")
)
