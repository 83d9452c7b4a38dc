package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/models"
)

type seedAnswer struct {
	content  string
	author   string
	votes    int
	age      time.Duration
	accepted bool
}

type seedQuestion struct {
	title       string
	description string
	tags        []string
	author      string
	votes       int
	views       int
	age         time.Duration
	answers     []seedAnswer
}

var mockQuestions = []seedQuestion{
	{
		title: "How to implement authentication in React with TypeScript?",
		description: `<p>I'm building a React application with TypeScript and need to implement user authentication. ` +
			`I've been looking into different approaches but I'm not sure which one is the best practice.</p>` +
			`<p><strong>What I need:</strong></p><ul><li>Login and logout functionality</li><li>Protected routes</li>` +
			`<li>JWT token management</li><li>Persistent sessions</li></ul>` +
			`<p><strong>What I've tried:</strong></p><p>I started with a simple useState approach but realized it won't ` +
			`work for protected routes. I also looked at Context API but I'm concerned about performance.</p>` +
			`<p>Any suggestions or code examples would be greatly appreciated!</p>`,
		tags:   []string{"react", "typescript", "authentication", "security"},
		author: "sarah_dev",
		votes:  42,
		views:  1234,
		age:    2 * time.Hour,
		answers: []seedAnswer{
			{
				content: `<p>I recommend using a combination of React Context and JWT tokens. Here's a clean approach:</p>` +
					`<p><strong>1. Create an Auth Context</strong> that holds the user, login, logout and loading state.</p>` +
					`<p><strong>2. Protected Route Component</strong> that redirects to /login when there is no user.</p>` +
					`<p>This approach gives you type safety with TypeScript and keeps your auth logic centralized.</p>`,
				author:   "react_expert",
				votes:    28,
				age:      time.Hour,
				accepted: true,
			},
			{
				content: `<p>Another great option is to use a library like <code>react-query</code> or <code>swr</code> ` +
					`along with your auth system. This gives you automatic token refresh and better state management.</p>` +
					`<p>The advantage is automatic revalidation and better error handling.</p>`,
				author: "full_stack_dev",
				votes:  15,
				age:    30 * time.Minute,
			},
		},
	},
	{
		title: "Best way to handle state management in large React applications?",
		description: `<p>I'm working on a large-scale React application and struggling with state management. ` +
			`Should I use Redux, Zustand, or Context API?</p>`,
		tags:   []string{"react", "state-management", "redux", "zustand"},
		author: "john_smith",
		votes:  28,
		views:  856,
		age:    4 * time.Hour,
		answers: []seedAnswer{
			{
				content: `<p>Start with Context for truly global values and reach for Zustand once updates get frequent.</p>`,
				author:  "alex_code",
				votes:   6,
				age:     3 * time.Hour,
			},
		},
	},
	{
		title: "How to optimize React performance for large lists?",
		description: `<p>My React app renders thousands of items in a list and it's becoming very slow. ` +
			`What are the best techniques for optimizing performance?</p>`,
		tags:   []string{"react", "performance", "optimization", "virtualization"},
		author: "alex_code",
		votes:  67,
		views:  2341,
		age:    24 * time.Hour,
		answers: []seedAnswer{
			{
				content:  `<p>Virtualize the list with <code>react-window</code> so only visible rows are mounted.</p>`,
				author:   "typescript_ninja",
				votes:    31,
				age:      20 * time.Hour,
				accepted: true,
			},
			{
				content: `<p>Memoize row components and keep keys stable.</p>`,
				author:  "sarah_dev",
				votes:   9,
				age:     18 * time.Hour,
			},
		},
	},
	{
		title: "TypeScript generic constraints with React components",
		description: `<p>I'm trying to create a generic React component with TypeScript but having trouble with type ` +
			`constraints. How can I properly constrain generic types?</p>`,
		tags:   []string{"typescript", "react", "generics", "types"},
		author: "typescript_ninja",
		votes:  15,
		views:  432,
		age:    72 * time.Hour,
	},
}

// Seed loads the mock questions, answers and tags. Timestamps are relative
// to now so relative times read naturally.
func Seed(db *gorm.DB, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		tagIDs := map[string]models.Tag{}
		for _, sq := range mockQuestions {
			q := models.Question{
				Title:       sq.title,
				Description: sq.description,
				Author:      sq.author,
				Votes:       sq.votes,
				Views:       sq.views,
				CreatedAt:   now.Add(-sq.age),
				UpdatedAt:   now.Add(-sq.age),
			}
			for _, name := range sq.tags {
				tag, ok := tagIDs[name]
				if !ok {
					tag = models.Tag{Name: name}
					if err := tx.Create(&tag).Error; err != nil {
						return errors.Wrapf(err, "seed tag %q", name)
					}
					tagIDs[name] = tag
				}
				q.Tags = append(q.Tags, tag)
			}
			for _, sa := range sq.answers {
				q.Answers = append(q.Answers, models.Answer{
					Content:   sa.content,
					Author:    sa.author,
					Votes:     sa.votes,
					Accepted:  sa.accepted,
					CreatedAt: now.Add(-sa.age),
					UpdatedAt: now.Add(-sa.age),
				})
			}
			if err := tx.Create(&q).Error; err != nil {
				return errors.Wrapf(err, "seed question %q", sq.title)
			}
		}
		return nil
	})
}
