package repos

import "unimart/internal/domain"

const unsplash = "https://images.unsplash.com/photo-"

// SeedListings returns a fresh copy of the demo catalog used when nothing is stored yet.
func SeedListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:                   "1",
			Title:                "Engineering Graphics Drafting Kit",
			Price:                850,
			Description:          "Complete drafting kit for Engineering Graphics course. Includes compass, set squares, scales, and more. Used for one semester only.",
			Image:                unsplash + "1611784728558-6a9848d4c72d?auto=format&fit=crop&w=500&q=80",
			Category:             "Drafting Tools",
			Subject:              "Engineering Graphics",
			Condition:            "Like New",
			Seller:               "Rahul M.",
			Rating:               4.8,
			PostedDate:           "3 days ago",
			IsBlockchainVerified: true,
		},
		{
			ID:          "2",
			Title:       "Chemistry Lab Coat (White)",
			Price:       350,
			Description: "Standard white lab coat for chemistry labs. Size M. Used for just one semester, still in great condition.",
			Image:       unsplash + "1581056771107-24247a7e6794?auto=format&fit=crop&w=500&q=80",
			Category:    "Lab Coats",
			Subject:     "Chemistry",
			Condition:   "Good",
			Seller:      "Priya S.",
			Rating:      4.5,
			PostedDate:  "1 week ago",
		},
		{
			ID:                   "3",
			Title:                "Calculus Textbook (8th Edition)",
			Price:                450,
			Description:          "Calculus: Early Transcendentals by James Stewart. Minimal highlighting, all pages intact. Perfect for first year calculus.",
			Image:                unsplash + "1544947950-fa07a98d237f?auto=format&fit=crop&w=500&q=80",
			Category:             "Textbooks",
			Subject:              "Mathematics",
			Condition:            "Good",
			Seller:               "Aditya K.",
			Rating:               4.2,
			PostedDate:           "2 days ago",
			IsBlockchainVerified: true,
		},
		{
			ID:          "4",
			Title:       "Workshop Tools Set",
			Price:       1200,
			Description: "Complete set of basic workshop tools required for the Engineering Workshop course. Includes all necessary tools in a carrying case.",
			Image:       unsplash + "1530124566582-a618bc2615dc?auto=format&fit=crop&w=500&q=80",
			Category:    "Tools",
			Subject:     "Workshop",
			Condition:   "Very Good",
			Seller:      "Vikram P.",
			Rating:      4.7,
			PostedDate:  "5 days ago",
		},
		{
			ID:          "5",
			Title:       "Physics Laboratory Manual",
			Price:       200,
			Description: "First year Physics lab manual with all experiments. Minimal writing, all pages intact. Perfect for your lab sessions.",
			Image:       unsplash + "1509228627152-72ae9ae6848d?auto=format&fit=crop&w=500&q=80",
			Category:    "Textbooks",
			Subject:     "Physics",
			Condition:   "Good",
			Seller:      "Sneha R.",
			Rating:      4.0,
			PostedDate:  "2 weeks ago",
		},
		{
			ID:                   "6",
			Title:                "Scientific Calculator (Casio FX-991EX)",
			Price:                900,
			Description:          "Advanced scientific calculator perfect for engineering courses. All functions working perfectly, like new condition.",
			Image:                unsplash + "1564939558297-fc396f18e5c7?auto=format&fit=crop&w=500&q=80",
			Category:             "Electronics",
			Subject:              "Mathematics",
			Condition:            "Like New",
			Seller:               "Arjun T.",
			Rating:               4.9,
			PostedDate:           "4 days ago",
			IsBlockchainVerified: true,
		},
		{
			ID:          "7",
			Title:       "Blue Lab Coat for Workshop",
			Price:       300,
			Description: "Blue lab coat required for mechanical workshop classes. Size L. Used for just one semester, good condition.",
			Image:       unsplash + "1581091226033-d5c48150dbaa?auto=format&fit=crop&w=500&q=80",
			Category:    "Lab Coats",
			Subject:     "Workshop",
			Condition:   "Good",
			Seller:      "Sanjay G.",
			Rating:      4.3,
			PostedDate:  "1 week ago",
		},
		{
			ID:          "8",
			Title:       "Computer Networks Textbook",
			Price:       400,
			Description: "Computer Networks by Tanenbaum, 5th Edition. Perfect for Computer Science students. Minimal wear, all pages intact.",
			Image:       unsplash + "1532012197267-da84d127e765?auto=format&fit=crop&w=500&q=80",
			Category:    "Textbooks",
			Subject:     "Computer Science",
			Condition:   "Very Good",
			Seller:      "Amit D.",
			Rating:      4.6,
			PostedDate:  "3 days ago",
		},
	}
}
