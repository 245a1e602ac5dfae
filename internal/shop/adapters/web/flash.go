package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dejobratic/minishop/internal/shop/app"
	"github.com/gin-gonic/gin"
)

// flashParam names the query value carrying the outcome of the mutation a
// redirect came from.
const flashParam = "done"

var flashMessages = map[string]string{
	"created":  app.MessageCreated,
	"updated":  app.MessageUpdated,
	"restored": app.MessageRestored,
	"ordered":  app.MessageOrdered,
}

// redirectAfter answers a completed mutation with 303 to path. done, when
// set, is shown as the success notice of the page loaded there.
func redirectAfter(c *gin.Context, path string, query url.Values, done string) {
	if query == nil {
		query = url.Values{}
	}
	if done != "" {
		query.Set(flashParam, done)
	}

	target := path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusSeeOther, target)
}

func pageQuery(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}

// withFlash merges the notice of the redirecting mutation with the notice of
// the load that followed it. A failed load is shown under the success
// message rather than in its place.
func withFlash(c *gin.Context, loaded app.Notice) app.Notice {
	message, ok := flashMessages[c.Query(flashParam)]
	if !ok {
		return loaded
	}

	flash := app.Notice{Level: app.NoticeSuccess, Message: message}
	if loaded.IsError() {
		flash.Warning = loaded.Message
	}
	return flash
}
