package template

import "github.com/ganot/checkvault/internal/domain/project"

// Item IDs are stable across all projects of a type so the same check can be
// compared between projects. Every item starts unchecked with an empty comment.

var webDevelopment = []project.Category{
	{
		ID:   "planning",
		Name: "Project Planning",
		Items: []project.Item{
			{ID: "req1", Title: "Requirements Gathering and Documentation"},
			{ID: "req2", Title: "User Stories and Use Cases"},
			{ID: "req3", Title: "Technical Stack Selection"},
			{ID: "req4", Title: "Project Timeline and Milestones"},
			{ID: "req5", Title: "Budget Planning and Resource Allocation"},
		},
	},
	{
		ID:   "design",
		Name: "Design Phase",
		Items: []project.Item{
			{ID: "des1", Title: "Wireframes and Mockups"},
			{ID: "des2", Title: "UI/UX Design"},
			{ID: "des3", Title: "Design System and Style Guide"},
			{ID: "des4", Title: "Responsive Design Planning"},
			{ID: "des5", Title: "Accessibility Considerations"},
		},
	},
	{
		ID:   "frontend",
		Name: "Frontend Development",
		Items: []project.Item{
			{ID: "front1", Title: "Component Architecture"},
			{ID: "front2", Title: "Responsive Implementation"},
			{ID: "front3", Title: "State Management Setup"},
			{ID: "front4", Title: "Form Validation and Handling"},
			{ID: "front5", Title: "API Integration"},
			{ID: "front6", Title: "Error Handling and Loading States"},
		},
	},
	{
		ID:   "backend",
		Name: "Backend Development",
		Items: []project.Item{
			{ID: "back1", Title: "Database Schema Design"},
			{ID: "back2", Title: "API Endpoints Implementation"},
			{ID: "back3", Title: "Authentication System"},
			{ID: "back4", Title: "Data Validation and Sanitization"},
			{ID: "back5", Title: "Error Handling and Logging"},
		},
	},
	{
		ID:   "testing",
		Name: "Testing",
		Items: []project.Item{
			{ID: "test1", Title: "Unit Tests"},
			{ID: "test2", Title: "Integration Tests"},
			{ID: "test3", Title: "End-to-End Tests"},
			{ID: "test4", Title: "Performance Testing"},
			{ID: "test5", Title: "Cross-browser Testing"},
		},
	},
	{
		ID:   "deployment",
		Name: "Deployment",
		Items: []project.Item{
			{ID: "dep1", Title: "CI/CD Pipeline Setup"},
			{ID: "dep2", Title: "Environment Configuration"},
			{ID: "dep3", Title: "SSL Certificate Setup"},
			{ID: "dep4", Title: "Database Migration Plan"},
			{ID: "dep5", Title: "Backup Strategy Implementation"},
		},
	},
	{
		ID:   "optimization",
		Name: "Optimization",
		Items: []project.Item{
			{ID: "opt1", Title: "Code Optimization and Cleanup"},
			{ID: "opt2", Title: "Performance Optimization"},
			{ID: "opt3", Title: "SEO Implementation"},
			{ID: "opt4", Title: "Asset Optimization"},
			{ID: "opt5", Title: "Caching Strategy"},
		},
	},
	{
		ID:   "documentation",
		Name: "Documentation",
		Items: []project.Item{
			{ID: "doc1", Title: "API Documentation"},
			{ID: "doc2", Title: "Code Documentation"},
			{ID: "doc3", Title: "User Documentation"},
			{ID: "doc4", Title: "Deployment Documentation"},
			{ID: "doc5", Title: "Maintenance Guidelines"},
		},
	},
}

var securityAudit = []project.Category{
	{
		ID:   "info-gathering",
		Name: "Information Gathering",
		Items: []project.Item{
			{ID: "info1", Title: "DNS Information: Check for subdomains, DNS records, and external services"},
			{ID: "info2", Title: "WHOIS Lookup: Identify domain owner information, registrars, and expiration"},
			{ID: "info3", Title: "Technology Stack: Identify frameworks, libraries, and server software used"},
			{ID: "info4", Title: "Server Banners: Review HTTP/HTTPS headers for server and technology info"},
			{ID: "info5", Title: "Publicly Available Data: Search for exposed source code, configuration files, etc."},
			{ID: "info6", Title: "Open Ports: Scan for unnecessary open ports"},
		},
	},
	{
		ID:   "auth",
		Name: "Authentication and Authorization",
		Items: []project.Item{
			{ID: "auth1", Title: "Login Pages: Check for brute-force vulnerability (rate limiting, CAPTCHA)"},
			{ID: "auth2", Title: "Weak Passwords: Test for weak or commonly used passwords"},
			{ID: "auth3", Title: "Session Management: Ensure secure session tokens (secure, HttpOnly, SameSite cookies)"},
			{ID: "auth4", Title: "Multi-factor Authentication (MFA): Test the implementation and ensure proper fallback mechanisms"},
			{ID: "auth5", Title: "Access Control: Test for privilege escalation (ensure users can't access unauthorized resources)"},
			{ID: "auth6", Title: "Account Lockout: Ensure accounts are locked after a defined number of failed login attempts"},
		},
	},
	{
		ID:   "input-validation",
		Name: "Input Validation",
		Items: []project.Item{
			{ID: "input1", Title: "Cross-Site Scripting (XSS): Test for reflected, stored, and DOM-based XSS"},
			{ID: "input2", Title: "SQL Injection: Check for vulnerable SQL queries (both direct and blind)"},
			{ID: "input3", Title: "Command Injection: Look for system command injections (shell injection)"},
			{ID: "input4", Title: "File Uploads: Ensure files are properly sanitized, and content type validation is in place"},
			{ID: "input5", Title: "Cross-Site Request Forgery (CSRF): Ensure anti-CSRF tokens are implemented for sensitive actions"},
		},
	},
	{
		ID:   "sensitive-data",
		Name: "Sensitive Data Exposure",
		Items: []project.Item{
			{ID: "data1", Title: "Data Encryption: Ensure sensitive data is encrypted (SSL/TLS for HTTPs, data at rest)"},
			{ID: "data2", Title: "Insecure Storage: Check for exposed credentials, API keys, or sensitive data in source code"},
			{ID: "data3", Title: "Password Storage: Check that passwords are hashed and salted (never stored as plaintext)"},
			{ID: "data4", Title: "HTTP Headers: Ensure proper HTTP security headers (Strict-Transport-Security, Content-Security-Policy, X-Content-Type-Options, etc.)"},
			{ID: "data5", Title: "TLS Configuration: Ensure up-to-date cipher suites, protocol versions (TLS 1.2 or higher), and no weak encryption"},
		},
	},
	{
		ID:   "waf",
		Name: "Web Application Firewalls (WAF)",
		Items: []project.Item{
			{ID: "waf1", Title: "WAF Detection: Check if a Web Application Firewall is in place and properly configured"},
			{ID: "waf2", Title: "Bypass Attempts: Test for bypass techniques (e.g., encoding or fragmentation of malicious payloads)"},
		},
	},
	{
		ID:   "business-logic",
		Name: "Business Logic and Application Logic",
		Items: []project.Item{
			{ID: "logic1", Title: "Authentication Flaws: Test for bypassing authentication or session logic"},
			{ID: "logic2", Title: "State Management: Ensure the state transitions in workflows are handled correctly"},
			{ID: "logic3", Title: "Race Conditions: Look for opportunities to exploit timing issues or concurrency flaws"},
		},
	},
	{
		ID:   "error-handling",
		Name: "Error Handling",
		Items: []project.Item{
			{ID: "error1", Title: "Error Messages: Ensure error messages do not leak sensitive information"},
			{ID: "error2", Title: "Exception Handling: Verify that exceptions are caught and handled without revealing stack traces"},
			{ID: "error3", Title: "Default Error Pages: Ensure custom error pages are implemented to prevent information leaks"},
		},
	},
	{
		ID:   "third-party",
		Name: "Third-Party Services and APIs",
		Items: []project.Item{
			{ID: "third1", Title: "API Security: Check for proper authentication, rate limiting, and input validation in APIs"},
			{ID: "third2", Title: "Dependencies: Check for vulnerabilities in third-party libraries (e.g., using outdated packages)"},
			{ID: "third3", Title: "CORS Policy: Ensure proper Cross-Origin Resource Sharing (CORS) settings to avoid unauthorized cross-origin requests"},
		},
	},
	{
		ID:   "file-permissions",
		Name: "File Permissions and Directories",
		Items: []project.Item{
			{ID: "file1", Title: "Directory Listing: Ensure directory listings are disabled on web servers"},
			{ID: "file2", Title: "File Permissions: Verify the least privilege principle for files and directories"},
			{ID: "file3", Title: "Sensitive Files: Ensure sensitive files (e.g., .env, config.php) are not publicly accessible"},
		},
	},
	{
		ID:   "logging",
		Name: "Logging and Monitoring",
		Items: []project.Item{
			{ID: "log1", Title: "Log Files: Ensure logging is implemented and contains necessary information (without logging sensitive data)"},
			{ID: "log2", Title: "Error and Access Logs: Check for proper monitoring of access logs and error logs"},
			{ID: "log3", Title: "Intrusion Detection: Ensure that the system is monitored for unusual activity"},
		},
	},
	{
		ID:   "xssi",
		Name: "Cross-Site Script Inclusion (XSSI)",
		Items: []project.Item{
			{ID: "xssi1", Title: "JS Vulnerabilities: Ensure JavaScript libraries are free from known vulnerabilities"},
			{ID: "xssi2", Title: "DOM-based XSS: Test for DOM-based XSS where user input is reflected in client-side JS"},
		},
	},
	{
		ID:   "social",
		Name: "Social Engineering Tests",
		Items: []project.Item{
			{ID: "social1", Title: "Phishing: Test employees' resistance to phishing attacks (email, social media, etc.)"},
			{ID: "social2", Title: "Pretexting: Test social engineering techniques involving impersonation"},
			{ID: "social3", Title: "Vishing: Test for susceptibility to voice-based social engineering"},
		},
	},
	{
		ID:   "dos",
		Name: "Denial of Service (DoS)",
		Items: []project.Item{
			{ID: "dos1", Title: "Rate Limiting: Test whether the application is protected against brute-force attacks or large-scale requests"},
			{ID: "dos2", Title: "Resource Exhaustion: Check if the application can be overwhelmed with excessive resource requests"},
		},
	},
	{
		ID:   "security-headers",
		Name: "Security Headers",
		Items: []project.Item{
			{ID: "headers1", Title: "Strict Transport Security (HSTS): Ensure HSTS is implemented to force HTTPS"},
			{ID: "headers2", Title: "X-Content-Type-Options: Set nosniff to prevent content type sniffing"},
			{ID: "headers3", Title: "Content Security Policy (CSP): Implement a CSP to mitigate XSS risks"},
			{ID: "headers4", Title: "X-Frame-Options: Ensure that the application cannot be embedded in a frame to prevent clickjacking"},
		},
	},
	{
		ID:   "backup",
		Name: "Backup and Recovery Plan",
		Items: []project.Item{
			{ID: "backup1", Title: "Backup Security: Ensure that backups are encrypted and stored securely"},
			{ID: "backup2", Title: "Disaster Recovery: Test the organization's ability to recover from an attack (ransomware, data breach)"},
		},
	},
}
