package events

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ce1sus/ce1sus-console/components/base"
	"github.com/ce1sus/ce1sus-console/modules/events/presentation/viewmodels"
)

type CommentListProps struct {
	Comments  []*viewmodels.Comment
	BasePath  string
	CanModify bool
}

func CommentList(props *CommentListProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := base.NewHTML(w).Raw(`<section class="comments"><h3>Comments</h3>`)
		if len(props.Comments) == 0 {
			h.Raw(`<p class="empty">No comments</p>`)
		}
		h.Raw(`<ul>`)
		for _, c := range props.Comments {
			link := props.BasePath + "/comments/" + c.ID
			h.Raw(`<li><a`).Attr("href", link).Raw(">").Text(c.CreatedAt).Raw(`</a> <span class="group">`).Text(c.CreatorGroup.Name).
				Raw(`</span><p>`).Text(c.Comment).Raw(`</p>`)
			if props.CanModify {
				h.Raw(`<a`).Attr("href", link+"/edit").Raw(`>Edit</a> <a`).Attr("href", link+"/delete").Raw(`>Delete</a>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ul>`)
		if props.CanModify {
			h.Raw(`<form method="post"`).Attr("action", props.BasePath+"/comments").
				Raw(`><textarea name="Comment" required></textarea><button type="submit" class="btn">Add comment</button></form>`)
		}
		return h.Raw(`</section>`).Err()
	})
}

type CommentDetailsProps struct {
	Comment  *viewmodels.Comment
	BasePath string
}

func CommentDetails(props *CommentDetailsProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := props.Comment
		h := base.NewHTML(w).Raw(`<section class="modal comment-details"><h3>Comment</h3><table class="table"><tbody>`)
		detailRow(h, "Group", c.CreatorGroup.Name)
		detailRow(h, "Created", c.CreatedAt)
		detailRow(h, "Modified", c.ModifiedOn)
		h.Raw(`</tbody></table><p class="comment-body">`).Text(c.Comment).Raw(`</p><a class="btn"`).Attr("href", props.BasePath).Raw(`>Close</a>`)
		return h.Raw(`</section>`).Err()
	})
}

type CommentFormProps struct {
	Heading   string
	Action    string
	CancelURL string
	Comment   string
	Errors    map[string]string
}

func CommentForm(props *CommentFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := base.NewHTML(w).Raw(`<section class="modal comment-form"><h3>`).Text(props.Heading).Raw(`</h3><form method="post"`).
			Attr("action", props.Action).Raw(`><textarea name="Comment">`).Text(props.Comment).Raw(`</textarea>`)
		fieldError(h, props.Errors, "Comment")
		h.Raw(`<button type="submit" class="btn btn-primary">Save</button> <a class="btn"`).Attr("href", props.CancelURL).Raw(`>Cancel</a>`)
		return h.Raw(`</form></section>`).Err()
	})
}
