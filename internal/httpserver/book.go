package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bookrepo "bookstore-api/internal/repository/book"
	booksvc "bookstore-api/internal/service/book"
)

func createBookHandler(books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in booksvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book payload"})
			return
		}
		created, err := books.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to create book")
			return
		}
		respondOK(c, "book created", gin.H{"book": created})
	}
}

func listBooksHandler(books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bookrepo.ListFilter{Category: c.Query("category")}
		if v := c.Query("trending"); v != "" {
			trending, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "trending must be a boolean"})
				return
			}
			filter.Trending = &trending
		}
		found, err := books.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "failed to fetch books")
			return
		}
		respondOK(c, "", gin.H{"books": found})
	}
}

func getBookHandler(books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		book, err := books.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, "book not found")
			return
		}
		respondOK(c, "", gin.H{"book": book})
	}
}

func updateBookHandler(books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in booksvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book payload"})
			return
		}
		updated, err := books.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err, "failed to update book")
			return
		}
		respondOK(c, "book updated", gin.H{"book": updated})
	}
}

func deleteBookHandler(books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := books.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err, "failed to delete book")
			return
		}
		respondOK(c, "book deleted", nil)
	}
}
