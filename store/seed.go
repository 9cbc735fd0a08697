package store

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

// Seed inserts the starter menu and knowledge base content. Rows that
// already exist are left untouched, so it is safe to run on every boot.
func Seed(ctx context.Context, db *bun.DB) error {
	menu := seedMenu()
	if _, err := db.NewInsert().
		Model(&menu).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return err
	}

	docs := seedKB()
	if _, err := db.NewInsert().
		Model(&docs).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return err
	}

	log.Info().Int("menu_items", len(menu)).Int("kb_documents", len(docs)).Msg("seed data applied")
	return nil
}

func seedMenu() []MenuItemRow {
	return []MenuItemRow{
		{
			ID:          "pepperoni_classic",
			Name:        "Pepperoni Classic",
			Price:       12.99,
			Description: "Traditional pepperoni pizza with mozzarella cheese and our signature tomato sauce",
			Ingredients: []string{"pepperoni", "mozzarella", "tomato sauce", "pizza dough", "oregano"},
			Variants:    map[string]float64{"small": 9.99, "medium": 12.99, "large": 15.99},
			Category:    "non-veg",
			Tags:        []string{"popular", "classic", "spicy"},
		},
		{
			ID:          "margherita",
			Name:        "Margherita",
			Price:       10.99,
			Description: "Simple and delicious with fresh mozzarella, basil, and tomato sauce",
			Ingredients: []string{"mozzarella", "fresh basil", "tomato sauce", "pizza dough", "olive oil"},
			Variants:    map[string]float64{"small": 7.99, "medium": 10.99, "large": 13.99},
			Category:    "veg",
			Tags:        []string{"popular", "classic", "vegetarian"},
		},
		{
			ID:          "bbq_chicken",
			Name:        "BBQ Chicken",
			Price:       14.99,
			Description: "Grilled chicken with BBQ sauce, red onions, and cilantro",
			Ingredients: []string{"grilled chicken", "bbq sauce", "red onions", "cilantro", "mozzarella", "pizza dough"},
			Variants:    map[string]float64{"small": 11.99, "medium": 14.99, "large": 17.99},
			Category:    "non-veg",
			Tags:        []string{"popular", "bbq", "chicken"},
		},
		{
			ID:          "veggie_supreme",
			Name:        "Veggie Supreme",
			Price:       13.99,
			Description: "Loaded with bell peppers, mushrooms, onions, olives, and tomatoes",
			Ingredients: []string{"bell peppers", "mushrooms", "onions", "black olives", "tomatoes", "mozzarella", "pizza dough"},
			Variants:    map[string]float64{"small": 10.99, "medium": 13.99, "large": 16.99},
			Category:    "veg",
			Tags:        []string{"vegetarian", "healthy", "loaded"},
		},
		{
			ID:          "meat_lovers",
			Name:        "Meat Lovers",
			Price:       16.99,
			Description: "Loaded with pepperoni, sausage, bacon, and ham",
			Ingredients: []string{"pepperoni", "italian sausage", "bacon", "ham", "mozzarella", "tomato sauce", "pizza dough"},
			Variants:    map[string]float64{"small": 13.99, "medium": 16.99, "large": 19.99},
			Category:    "non-veg",
			Tags:        []string{"popular", "meat", "protein-packed"},
		},
		{
			ID:          "four_cheese",
			Name:        "Four Cheese",
			Price:       14.99,
			Description: "A cheese lover's dream with mozzarella, parmesan, gorgonzola, and provolone",
			Ingredients: []string{"mozzarella", "parmesan", "gorgonzola", "provolone", "white sauce", "pizza dough"},
			Variants:    map[string]float64{"small": 11.99, "medium": 14.99, "large": 17.99},
			Category:    "veg",
			Tags:        []string{"cheese", "creamy", "gourmet"},
		},
		{
			ID:          "spicy_devil",
			Name:        "Spicy Devil",
			Price:       15.99,
			Description: "Extra spicy with jalapeños, hot sauce, pepperoni, and red chili flakes",
			Ingredients: []string{"jalapeños", "hot sauce", "pepperoni", "red chili flakes", "mozzarella", "tomato sauce", "pizza dough"},
			Variants:    map[string]float64{"small": 12.99, "medium": 15.99, "large": 18.99},
			Category:    "non-veg",
			Tags:        []string{"spicy", "hot", "extreme"},
		},
		{
			ID:          "hawaiian",
			Name:        "Hawaiian Paradise",
			Price:       13.99,
			Description: "Ham and pineapple with mozzarella on a tomato base - a tropical favorite",
			Ingredients: []string{"ham", "pineapple", "mozzarella", "tomato sauce", "pizza dough"},
			Variants:    map[string]float64{"small": 10.99, "medium": 13.99, "large": 16.99},
			Category:    "non-veg",
			Tags:        []string{"tropical", "sweet_savory"},
		},
		{
			ID:          "mushroom_truffle",
			Name:        "Mushroom & Truffle",
			Price:       17.99,
			Description: "Gourmet pizza with mixed mushrooms, truffle oil, and parmesan",
			Ingredients: []string{"mixed mushrooms", "truffle oil", "parmesan", "mozzarella", "white sauce", "pizza dough", "arugula"},
			Variants:    map[string]float64{"small": 14.99, "medium": 17.99, "large": 20.99},
			Category:    "veg",
			Tags:        []string{"gourmet", "luxury", "earthy"},
		},
		{
			ID:          "buffalo_chicken",
			Name:        "Buffalo Chicken",
			Price:       15.99,
			Description: "Spicy buffalo chicken with ranch dressing, celery, and blue cheese",
			Ingredients: []string{"buffalo chicken", "ranch dressing", "celery", "blue cheese", "mozzarella", "pizza dough"},
			Variants:    map[string]float64{"small": 12.99, "medium": 15.99, "large": 18.99},
			Category:    "non-veg",
			Tags:        []string{"spicy", "chicken", "ranch"},
		},
	}
}

func seedKB() []KBDocumentRow {
	return []KBDocumentRow{
		{
			ID:       "kb-001",
			Title:    "Vegetarian Options",
			Category: "Menu",
			Text:     "Vegetarian options: Margherita (tomato, mozzarella, basil), Veggie Supreme (bell peppers, onions, mushrooms, olives, tomatoes), Four Cheese (mozzarella, parmesan, gorgonzola, provolone), and Mushroom & Truffle (mixed mushrooms, truffle oil, parmesan).",
		},
		{
			ID:       "kb-002",
			Title:    "Vegan & Gluten-Free",
			Category: "Menu",
			Text:     "Vegan options available! We offer vegan cheese ($2 extra) and can make any veggie pizza vegan. Gluten-free crust available for all pizzas ($3 extra), made in a separate area to avoid cross-contamination.",
		},
		{
			ID:       "kb-003",
			Title:    "Pizza Sizes",
			Category: "Menu",
			Text:     "Pizza sizes: Small (10 inch, 6 slices, $8-$10), Medium (12 inch, 8 slices, $10-$13), Large (14 inch, 10 slices, $13-$16), Extra Large (16 inch, 12 slices, $16-$19). Prices vary by toppings.",
		},
		{
			ID:       "kb-004",
			Title:    "Combo Deals",
			Category: "Menu",
			Text:     "Combo deals: 2 Large Pizzas + Garlic Bread + 2L Soda ($35), Family Pack (3 Medium Pizzas + Wings + Dessert $45), Student Meal (1 Medium + Drink $12), Party Pack (5 Large Pizzas + 3 Sides $75). Deals change weekly!",
		},
		{
			ID:       "kb-005",
			Title:    "How to Place Order",
			Category: "Ordering",
			Text:     "Place orders 3 ways: 1) Website - browse the menu, add to cart, checkout. 2) WhatsApp - message us your order at +1-415-523-8886. 3) Phone - call 1-800-PIZZA-NOW. You'll get an order ID immediately!",
		},
		{
			ID:       "kb-006",
			Title:    "Delivery Areas",
			Category: "Delivery",
			Text:     "Delivery areas: we deliver within a 10km radius of each store. Enter your address at checkout to check availability. Free delivery on orders $25+, otherwise a $3 delivery fee applies.",
		},
		{
			ID:       "kb-007",
			Title:    "Delivery Time",
			Category: "Delivery",
			Text:     "Delivery time: average 25-35 minutes. During peak hours (6-9 PM) it may take up to 45 minutes. You'll get real-time tracking with an estimated arrival time. We guarantee hot, fresh pizza!",
		},
		{
			ID:       "kb-008",
			Title:    "Payment Methods",
			Category: "Payment",
			Text:     "Payment methods: Credit/Debit Cards (Visa, Mastercard, Amex), Cash on Delivery, Digital Wallets (PayPal, Google Pay, Apple Pay, Venmo). All payments are secured with SSL encryption.",
		},
		{
			ID:       "kb-009",
			Title:    "Order Status Meanings",
			Category: "Tracking",
			Text:     "Order status meanings: Created (order received), Confirmed (payment verified), Preparing (in the kitchen), Out for Delivery (on the way!), Delivered (enjoy!). Track with your order ID on the Track Order page.",
		},
		{
			ID:       "kb-010",
			Title:    "Cancel Order",
			Category: "Support",
			Text:     "Cancellation is free within 5 minutes of placing an order. After that a $3 cancellation fee applies if the kitchen has not started. Orders cannot be cancelled once delivered. Full refund when eligible.",
		},
		{
			ID:       "kb-011",
			Title:    "Store Hours",
			Category: "Miscellaneous",
			Text:     "Store hours: Monday-Friday 10 AM - 11 PM, Saturday-Sunday 9 AM - 12 AM (midnight). Delivery until 30 minutes before closing. Closed Christmas Day and New Year's Day.",
		},
		{
			ID:       "kb-012",
			Title:    "Allergen Information",
			Category: "Miscellaneous",
			Text:     "Allergen info: all pizzas contain gluten (wheat) and dairy unless specified. Vegan and gluten-free options are available. Inform us of allergies when ordering - we have handling protocols!",
		},
	}
}
