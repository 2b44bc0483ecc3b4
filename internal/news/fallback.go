package news

import "time"

type fallbackEntry struct {
	title, description, url, image, source string
}

var fallbackEntries = []fallbackEntry{
	{
		"AI Breakthrough in Early Disease Detection",
		"New AI algorithms show promising results in early detection of various diseases, potentially revolutionizing preventive healthcare.",
		"https://example.com/ai-health",
		"https://images.unsplash.com/photo-1576671081837-49000212a370?q=80&w=800",
		"Health Tech Today",
	},
	{
		"Machine Learning Advances in Healthcare",
		"Recent developments in machine learning are transforming how we approach medical diagnostics and treatment planning.",
		"https://example.com/ml-health",
		"https://images.unsplash.com/photo-1532187863486-abf9dbad1b69?q=80&w=800",
		"Medical AI Journal",
	},
	{
		"Future of Preventive Healthcare",
		"How artificial intelligence and predictive analytics are shaping the future of preventive healthcare and personalized medicine.",
		"https://example.com/future-health",
		"https://images.unsplash.com/photo-1576091160550-2173dba999ef?q=80&w=800",
		"Health Innovation",
	},
	{
		"Digital Health Transformation",
		"The ongoing digital transformation in healthcare is creating new opportunities for better patient care and disease prevention.",
		"https://example.com/digital-health",
		"https://images.unsplash.com/photo-1576671081837-49000212a370?q=80&w=800",
		"Digital Health Weekly",
	},
	{
		"AI in Medical Imaging",
		"How artificial intelligence is revolutionizing medical imaging and improving diagnostic accuracy.",
		"https://example.com/ai-imaging",
		"https://images.unsplash.com/photo-1581595220892-b0739db3ba8c?q=80&w=800",
		"Medical Imaging Today",
	},
	{
		"Personalized Medicine Breakthroughs",
		"New advances in AI-driven personalized medicine are leading to more effective treatments.",
		"https://example.com/personalized-medicine",
		"https://images.unsplash.com/photo-1579154204601-01588f351e67?q=80&w=800",
		"Future Medicine",
	},
	{
		"Healthcare Data Analytics",
		"Big data and analytics are transforming how we understand and predict health outcomes.",
		"https://example.com/health-analytics",
		"https://images.unsplash.com/photo-1576089172869-4f5f6f315620?q=80&w=800",
		"Health Analytics Weekly",
	},
	{
		"Remote Health Monitoring",
		"AI-powered remote health monitoring systems are making healthcare more accessible and efficient.",
		"https://example.com/remote-health",
		"https://images.unsplash.com/photo-1551076805-e1869033e561?q=80&w=800",
		"Digital Health News",
	},
}

// Fallback returns the fixed article list, stamped with now.
func Fallback(now time.Time) []Article {
	out := make([]Article, len(fallbackEntries))
	for i, e := range fallbackEntries {
		out[i] = Article{
			Title:       e.title,
			Description: e.description,
			URL:         e.url,
			URLToImage:  e.image,
			PublishedAt: now.UTC().Format(time.RFC3339),
			Source:      Source{Name: e.source},
		}
	}
	return out
}
