package supervisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/amv-mods/mastereditor/reddit"
)

const megathreadWidgetName = "Megathreads"

// RotateMegathread posts this month's feedback thread and repoints all the
// navigation at it: the old thread is unstickied, the new one stickied,
// flaired and sorted newest-first, and both the sidebar description and
// the Megathreads widget button swap the old URL for the new.
func (l *Loop) RotateMegathread(ctx context.Context) (*reddit.Submission, error) {
	monthYear := l.now().Format("January 2006")
	title := fmt.Sprintf("Feedback MEGAthread - %s", monthYear)
	body := fmt.Sprintf("# FEEDBACK MEGATHREAD\n\n# %s\n\n%s", monthYear, l.MegathreadTemplate)

	megathread, err := l.Gateway.SubmitSelfPost(ctx, l.Subreddit, title, body)
	if err != nil {
		return nil, fmt.Errorf("submitting megathread: %w", err)
	}

	widget, button, err := l.findFeedbackButton(ctx)
	if err != nil {
		return nil, err
	}

	old, err := l.Gateway.FetchSubmission(ctx, submissionIDFromURL(button.URL))
	if err != nil {
		return nil, fmt.Errorf("resolving previous megathread: %w", err)
	}
	if old.Stickied {
		if err := l.Gateway.Sticky(ctx, old, false); err != nil {
			return nil, fmt.Errorf("unstickying previous megathread: %w", err)
		}
	}

	if err := l.Gateway.Sticky(ctx, megathread, true); err != nil {
		return nil, fmt.Errorf("stickying megathread: %w", err)
	}
	if l.FlairTemplateID != "" {
		if err := l.Gateway.SetFlair(ctx, megathread, l.FlairTemplateID); err != nil {
			return nil, fmt.Errorf("flairing megathread: %w", err)
		}
	}
	if err := l.Gateway.SetSuggestedSort(ctx, megathread, "new"); err != nil {
		return nil, fmt.Errorf("setting megathread sort: %w", err)
	}

	description, err := l.Gateway.SubredditDescription(ctx, l.Subreddit)
	if err != nil {
		return nil, fmt.Errorf("reading sidebar: %w", err)
	}
	updated := strings.Replace(description, old.URL, megathread.URL, 1)
	if updated != description {
		if err := l.Gateway.UpdateSidebarDescription(ctx, l.Subreddit, updated); err != nil {
			return nil, fmt.Errorf("updating sidebar: %w", err)
		}
	}

	buttons := make([]reddit.WidgetButton, len(widget.Buttons))
	copy(buttons, widget.Buttons)
	for i := range buttons {
		if buttons[i].URL == button.URL {
			buttons[i].URL = megathread.URL
		}
	}
	if err := l.Gateway.UpdateWidgetButtons(ctx, l.Subreddit, widget.ID, buttons); err != nil {
		return nil, fmt.Errorf("updating megathread widget: %w", err)
	}

	return megathread, nil
}

// locates the "Feedback" button in the Megathreads sidebar widget
func (l *Loop) findFeedbackButton(ctx context.Context) (*reddit.Widget, *reddit.WidgetButton, error) {
	widgets, err := l.Gateway.SidebarWidgets(ctx, l.Subreddit)
	if err != nil {
		return nil, nil, fmt.Errorf("listing sidebar widgets: %w", err)
	}
	for i := range widgets {
		if widgets[i].ShortName != megathreadWidgetName {
			continue
		}
		for j := range widgets[i].Buttons {
			if strings.Contains(widgets[i].Buttons[j].Text, "Feedback") {
				return &widgets[i], &widgets[i].Buttons[j], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("no Feedback button in %q sidebar widget", megathreadWidgetName)
}

// pulls the base-36 ID out of a submission permalink URL
// (".../comments/<id>/<slug>/")
func submissionIDFromURL(rawURL string) string {
	_, after, found := strings.Cut(rawURL, "/comments/")
	if !found {
		return rawURL
	}
	id, _, _ := strings.Cut(after, "/")
	return id
}
