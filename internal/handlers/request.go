package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/abeluzrivera/Fullstack-Test-01/internal/store"

	"github.com/gin-gonic/gin"
)

// nullableString tells an absent field apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// update returns the service form: nil for absent, "" for null.
func (n nullableString) update() *string {
	if !n.Set {
		return nil
	}
	if n.Value == nil {
		empty := ""
		return &empty
	}
	return n.Value
}

// paginationFromQuery reads page, limit and search. Bad numbers fall back
// to the defaults.
func paginationFromQuery(c *gin.Context) store.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageSize)))
	return store.NewPaginationParams(page, limit, c.Query("search"))
}
