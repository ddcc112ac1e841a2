// Package client is a Go client for the aiportalx catalogue HTTP API.
//
//	c := client.New("http://localhost:8080", client.WithAPIKey(os.Getenv("ADMIN_API_KEY")))
//	page, _ := c.Models(ctx, client.ListOptions{
//	    Filters: map[string][]string{"Task": {"Chat"}, "Organization": {"OpenAI"}},
//	    Sort:    "Publication date",
//	    Limit:   20,
//	})
//	gpt, _ := c.Model(ctx, "openai", "gpt-4o")
//	side, _ := c.Compare(ctx, "GPT-4o", "Llama 3 70B")
package client
