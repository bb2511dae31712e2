package catalog

import "github.com/smartagro/smartagro/internal/domain"

// Asset references
const (
	LogoAsset     = "images/smartlogo.png"
	soyaAsset     = "images/soya-bean-product.jpg"
	cornAsset     = "images/sweet-corn.webp"
	plantainAsset = "images/unripe-plantain.webp"
)

// Dataset groups every collection served by the data store
type Dataset struct {
	Products          []domain.Product
	ProcessedProducts []domain.Product
	Users             []domain.User
	Messages          []domain.Message
	Tasks             []domain.Task
	Logo              string
}

// Fixtures returns a fresh copy of the sample data set.
func Fixtures() Dataset {
	return Dataset{
		Products:          rawProducts(),
		ProcessedProducts: processedProducts(),
		Users:             users(),
		Messages:          messages(),
		Tasks:             tasks(),
		Logo:              LogoAsset,
	}
}

func rawProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Corn",
			Short:       "High-quality corn for various needs.",
			Description: "Our corn is sourced from the best farms and undergoes rigorous quality control to ensure freshness and nutritional value. Suitable for a variety of uses, including animal feed, human consumption, and industrial purposes.",
			Image:       cornAsset,
			Price:       5000,
			Category:    domain.CategoryRaw,
		},
		{
			ID:          2,
			Name:        "Soya",
			Short:       "Premium-grade soya beans.",
			Description: "We offer top-quality soya beans that are rich in protein and essential nutrients. Ideal for producing soy milk, tofu, and other soy-based products. Perfect for both commercial and personal use.",
			Image:       soyaAsset,
			Price:       6000,
			Category:    domain.CategoryRaw,
		},
		{
			ID:          3,
			Name:        "Plantain",
			Short:       "Fresh plantains directly from the farm.",
			Description: "Our plantains are handpicked at the peak of ripeness to ensure great taste and quality. They are perfect for cooking a variety of dishes, from fried plantains to plantain chips and more.",
			Image:       plantainAsset,
			Price:       4000,
			Category:    domain.CategoryRaw,
		},
	}
}

func processedProducts() []domain.Product {
	p := func(id int64, name, short, desc string, price int64, image string) domain.Product {
		return domain.Product{ID: id, Name: name, Short: short, Description: desc, Image: image, Price: price, Category: domain.CategoryProcessed}
	}
	return []domain.Product{
		// Corn
		p(4, "Corn Flour", "Finely milled corn flour.", "Ideal for baking and cooking.", 3000, cornAsset),
		p(5, "Cornflakes", "Delicious breakfast cereal.", "Perfect for a quick and healthy meal.", 3500, cornAsset),
		p(6, "Corn Oil", "High-quality corn oil.", "Great for cooking and frying.", 7000, cornAsset),
		// Soya bean
		p(7, "Soy Milk", "Nutritious soy milk.", "Rich in protein and great for lactose-intolerant individuals.", 4000, soyaAsset),
		p(8, "Soy Flour", "Healthy soy flour.", "Perfect for baking and adding to meals.", 3000, soyaAsset),
		p(9, "Tofu", "Plant-based protein.", "Perfect for vegan meals.", 4500, soyaAsset),
		// Plantain
		p(10, "Plantain Chips", "Crispy plantain chips.", "Perfect as a snack or a treat.", 2500, plantainAsset),
		p(11, "Plantain Flour", "Gluten-free flour.", "Ideal for healthy baking and cooking.", 3500, plantainAsset),
		p(12, "Plantain Bread", "Freshly baked bread.", "Made from 100% plantain flour.", 5000, plantainAsset),
		// Mixed
		p(13, "Soy-Corn Snack", "Healthy soy-corn blend snack.", "A delicious and nutritious snack.", 3000, soyaAsset),
		p(14, "Plantain-Soy Flour", "Nutritious blended flour.", "A mix of plantain and soy for versatile cooking.", 4000, plantainAsset),
		p(15, "Corn-Plantain Chips", "Crispy chips blend.", "A mix of corn and plantain chips for the perfect snack.", 3500, cornAsset),
	}
}

func users() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Alice Johnson"},
		{ID: 2, Name: "Bob Smith"},
		{ID: 3, Name: "Charlie Brown"},
		{ID: 4, Name: "Diana Wilson"},
		{ID: 5, Name: "Ethan Clark"},
		{ID: 6, Name: "Fiona Martinez"},
		{ID: 7, Name: "George Lee"},
		{ID: 8, Name: "Hannah White"},
		{ID: 9, Name: "Ian Scott"},
		{ID: 10, Name: "Jessica Adams"},
		{ID: 11, Name: "Kyle Davis"},
		{ID: 12, Name: "Laura Hill"},
	}
}

func messages() []domain.Message {
	return []domain.Message{
		{ID: 1, Text: "Hello everyone!", Sender: "Alice Johnson", Time: "9:00 AM", ChatType: domain.ChatGeneral},
		{ID: 2, Text: "Hi Alice!", Sender: "Bob Smith", Time: "9:01 AM", ChatType: domain.ChatGeneral},
		{ID: 3, Text: "How's it going?", Sender: "Charlie Brown", Time: "9:02 AM", ChatType: domain.ChatGeneral},

		{ID: 4, Text: "Hi there!", Sender: "Alice Johnson", Time: "10:00 AM", ChatType: domain.ChatDirect, Receiver: domain.CurrentUser},
		{ID: 5, Text: "Hello!", Sender: domain.CurrentUser, Time: "10:01 AM", ChatType: domain.ChatDirect, Receiver: "Alice Johnson"},
		{ID: 6, Text: "How are you?", Sender: "Alice Johnson", Time: "10:02 AM", ChatType: domain.ChatDirect, Receiver: domain.CurrentUser},
	}
}

func tasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Prepare Sales Report", Assignee: "Alice", DueDate: "2025-01-18", Completed: false},
		{ID: 2, Title: "Inspect Inventory", Assignee: "Bob", DueDate: "2025-01-20", Completed: false},
		{ID: 3, Title: "Customer Follow-Up", Assignee: "Charlie", DueDate: "2025-01-22", Completed: true},
	}
}
