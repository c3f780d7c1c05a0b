package main

type seedCategory struct {
	Name, Description string
}

type seedListing struct {
	ServiceName  string
	ProviderName string
	ContactInfo  string
	Email        string
	Phone        string
	Description  string
	LocationArea string
	Category     string
	PriceRange   string
}

type seedReview struct {
	ServiceName  string
	ReviewerName string
	Rating       int
	Comment      string
}

var seedCategories = []seedCategory{
	{"Tutoring", "Academic tutoring and educational services"},
	{"Home Repair", "Home improvement and repair services"},
	{"Pet Care", "Pet sitting, walking, and grooming services"},
	{"Cleaning", "House cleaning and maintenance services"},
	{"Delivery", "Local delivery and pickup services"},
	{"Photography", "Photography and videography services"},
	{"Event Planning", "Party and event planning services"},
	{"Beauty & Wellness", "Hair, makeup, and wellness services"},
	{"Computer Services", "Computer repair and tech support"},
	{"Transportation", "Ride sharing and transportation services"},
}

var seedListings = []seedListing{
	{
		ServiceName:  "Math Tutoring",
		ProviderName: "Sarah Johnson",
		ContactInfo:  "Call or text: (555) 123-4567",
		Email:        "sarah.math@gmail.com",
		Phone:        "(555) 123-4567",
		Description:  "Experienced math tutor specializing in algebra, geometry, and calculus. Available for high school and college students. Flexible scheduling including weekends.",
		LocationArea: "Downtown Campus",
		Category:     "Tutoring",
		PriceRange:   "$25-40/hour",
	},
	{
		ServiceName:  "Home Electrical Repairs",
		ProviderName: "Mike's Electric",
		ContactInfo:  "Call Mike: (555) 234-5678",
		Email:        "mike@mikeselectric.com",
		Phone:        "(555) 234-5678",
		Description:  "Licensed electrician with 15 years experience. Specializing in residential electrical repairs, installations, and safety inspections. Emergency services available.",
		LocationArea: "Westside Neighborhood",
		Category:     "Home Repair",
		PriceRange:   "Starting at $75/hour",
	},
	{
		ServiceName:  "Dog Walking & Pet Sitting",
		ProviderName: "Emma's Pet Care",
		ContactInfo:  "Text preferred: (555) 345-6789",
		Email:        "emma@emmaspetcare.com",
		Phone:        "(555) 345-6789",
		Description:  "Professional pet care services including daily walks, overnight pet sitting, and basic grooming. Insured and bonded. References available.",
		LocationArea: "Campus Area",
		Category:     "Pet Care",
		PriceRange:   "$15-25/visit",
	},
	{
		ServiceName:  "Deep House Cleaning",
		ProviderName: "Clean & Shine",
		ContactInfo:  "Book online or call: (555) 456-7890",
		Email:        "info@cleanandshine.com",
		Phone:        "(555) 456-7890",
		Description:  "Thorough house cleaning services including kitchens, bathrooms, living areas, and bedrooms. Eco-friendly products available. Weekly, bi-weekly, or one-time cleaning.",
		LocationArea: "Within 10 miles of downtown",
		Category:     "Cleaning",
		PriceRange:   "$80-150 per visit",
	},
	{
		ServiceName:  "Grocery Delivery",
		ProviderName: "Quick Delivery Co.",
		ContactInfo:  "Order via app or call: (555) 567-8901",
		Email:        "orders@quickdelivery.com",
		Phone:        "(555) 567-8901",
		Description:  "Fast grocery delivery from local stores. Same-day delivery available. Minimum order $25. Serving campus area and surrounding neighborhoods.",
		LocationArea: "Campus & Surrounding Areas",
		Category:     "Delivery",
		PriceRange:   "$5-10 delivery fee",
	},
	{
		ServiceName:  "Portrait Photography",
		ProviderName: "Creative Lens Studio",
		ContactInfo:  "Email for bookings: info@creativelens.com",
		Email:        "info@creativelens.com",
		Phone:        "(555) 678-9012",
		Description:  "Professional portrait photography for individuals, couples, and families. Studio and outdoor sessions available. High-resolution digital photos included.",
		LocationArea: "Studio in Eastside, travel within 20 miles",
		Category:     "Photography",
		PriceRange:   "$150-300 per session",
	},
	{
		ServiceName:  "Birthday Party Planning",
		ProviderName: "Party Perfect Events",
		ContactInfo:  "Call Lisa: (555) 789-0123",
		Email:        "lisa@partyperfect.com",
		Phone:        "(555) 789-0123",
		Description:  "Complete party planning services for birthdays, graduations, and special occasions. Includes decorations, entertainment, catering coordination, and cleanup.",
		LocationArea: "Local venues and homes",
		Category:     "Event Planning",
		PriceRange:   "Starting at $200",
	},
	{
		ServiceName:  "Hair Styling & Makeup",
		ProviderName: "Beauty by Maria",
		ContactInfo:  "Book appointment: (555) 890-1234",
		Email:        "maria@beautybymaria.com",
		Phone:        "(555) 890-1234",
		Description:  "Professional hair styling and makeup services for special events, weddings, and everyday looks. Licensed cosmetologist with 10+ years experience.",
		LocationArea: "Home visits within 15 miles",
		Category:     "Beauty & Wellness",
		PriceRange:   "$60-120 per service",
	},
	{
		ServiceName:  "Computer Repair & Setup",
		ProviderName: "Tech Solutions",
		ContactInfo:  "Call or text: (555) 901-2345",
		Email:        "support@techsolutions.com",
		Phone:        "(555) 901-2345",
		Description:  "Computer repair, virus removal, hardware upgrades, and system setup. Specializing in laptops and desktops. On-site service available.",
		LocationArea: "Campus and nearby areas",
		Category:     "Computer Services",
		PriceRange:   "$50-100 per hour",
	},
	{
		ServiceName:  "Airport Shuttle Service",
		ProviderName: "Reliable Rides",
		ContactInfo:  "Book online or call: (555) 012-3456",
		Email:        "bookings@reliablerides.com",
		Phone:        "(555) 012-3456",
		Description:  "Reliable airport transportation with professional drivers. Clean vehicles, flight tracking, and flexible scheduling. Group rates available.",
		LocationArea: "Airport and surrounding areas",
		Category:     "Transportation",
		PriceRange:   "$40-80 per trip",
	},
}

var seedReviews = []seedReview{
	{"Math Tutoring", "John Smith", 5, "Sarah helped my daughter improve her calculus grade from a C to an A. Very patient and explains concepts clearly. Highly recommended!"},
	{"Math Tutoring", "Lisa Chen", 5, "Excellent tutor! Sarah made algebra finally click for me. Flexible scheduling and great communication."},
	{"Home Electrical Repairs", "Robert Wilson", 5, "Mike fixed our kitchen outlet quickly and professionally. Fair pricing and very knowledgeable. Will definitely use again."},
	{"Dog Walking & Pet Sitting", "Amanda Davis", 5, "Emma takes great care of my golden retriever. My dog gets so excited when she arrives! Very reliable and trustworthy."},
	{"Deep House Cleaning", "Jennifer Brown", 4, "Very thorough cleaning service. The house looked spotless after they left. Would recommend for deep cleaning needs."},
	{"Grocery Delivery", "David Lee", 4, "Fast delivery and good selection. Saves me so much time during busy weeks. App is easy to use."},
}

// seedCoords is the optional -coords variant: listings get a city
// coordinate round-robin. Nothing in the query layer consumes these.
var seedCoords = []struct {
	City     string
	Lat, Lng float64
}{
	{"Mumbai", 19.0760, 72.8777},
	{"Delhi", 28.6139, 77.2090},
	{"Bangalore", 12.9716, 77.5946},
	{"Chennai", 13.0827, 80.2707},
	{"Hyderabad", 17.3850, 78.4867},
	{"Kolkata", 22.5726, 88.3639},
	{"Pune", 18.5204, 73.8567},
	{"Ahmedabad", 23.0225, 72.5714},
	{"Jaipur", 26.9124, 75.7873},
}
