// file: internals/helpers/json_response_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func resolvePagingFor(t *testing.T, target string) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return got
}

func TestResolvePagingDefaults(t *testing.T) {
	p := resolvePagingFor(t, "/items")
	if p.Page != 1 || p.PerPage != 20 || p.Offset != 0 || p.Limit != 20 {
		t.Fatalf("unexpected paging: %+v", p)
	}
}

func TestResolvePagingNormalizesBadInput(t *testing.T) {
	p := resolvePagingFor(t, "/items?page=-3&per_page=0")
	if p.Page != 1 || p.PerPage != 20 {
		t.Fatalf("unexpected paging: %+v", p)
	}
}

func TestResolvePagingCapsPerPage(t *testing.T) {
	p := resolvePagingFor(t, "/items?page=3&per_page=500")
	if p.PerPage != 100 {
		t.Fatalf("per_page should be capped at 100, got %d", p.PerPage)
	}
	if p.Offset != 200 {
		t.Fatalf("offset should be (page-1)*per_page = 200, got %d", p.Offset)
	}
}

func TestResolvePagingLimitAlias(t *testing.T) {
	p := resolvePagingFor(t, "/items?limit=15")
	if p.PerPage != 15 || p.Limit != 15 {
		t.Fatalf("limit alias not honored: %+v", p)
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Fatalf("total_pages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("page 2 of 3 should have next and prev: %+v", p)
	}
}

func TestBuildPaginationFromPageEmpty(t *testing.T) {
	p := BuildPaginationFromPage(0, 1, 20)
	if p.TotalPages != 1 {
		t.Fatalf("total_pages = %d, want 1", p.TotalPages)
	}
	if p.HasNext || p.HasPrev {
		t.Fatalf("empty result should have no next/prev: %+v", p)
	}
}
