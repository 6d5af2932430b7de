package crud_test

import "github.com/dalemusser/edupath/internal/app/system/paging"

func pageOf(page, limit int) paging.Params { return paging.Params{Page: page, Limit: limit} }
